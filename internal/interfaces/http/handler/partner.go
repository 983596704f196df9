package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/retailhub/backend/internal/application/catalog"
	"github.com/retailhub/backend/internal/application/importer"
	"github.com/retailhub/backend/internal/interfaces/http/dto"
)

// PartnerHandler handles shop operator HTTP requests
type PartnerHandler struct {
	BaseHandler
	shopService   *catalog.ShopService
	importService *importer.ImportService
}

// NewPartnerHandler creates a new partner handler
func NewPartnerHandler(shopService *catalog.ShopService, importService *importer.ImportService) *PartnerHandler {
	return &PartnerHandler{
		shopService:   shopService,
		importService: importService,
	}
}

// GetShop godoc
// @Summary      Get own shop
// @Tags         partner
// @Produce      json
// @Success      200 {object} dto.Response{data=catalog.ShopResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /partner/shop [get]
func (h *PartnerHandler) GetShop(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	shop, err := h.shopService.GetForUser(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, shop)
}

// UpdateShopState godoc
// @Summary      Open or close the shop for orders
// @Description  A closed shop's offers drop out of the public catalog and
// @Description  cannot be added to baskets
// @Tags         partner
// @Accept       json
// @Produce      json
// @Param        request body catalog.UpdateShopStateRequest true "Target state"
// @Success      200 {object} dto.Response{data=catalog.ShopResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /partner/shop/state [put]
func (h *PartnerHandler) UpdateShopState(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req catalog.UpdateShopStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	shop, err := h.shopService.UpdateState(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, shop)
}

// ImportFeed godoc
// @Summary      Import a price feed
// @Description  Accepts a YAML feed document as the request body and replays
// @Description  it into the catalog for the operator's shop
// @Tags         partner
// @Accept       application/x-yaml
// @Produce      json
// @Success      200 {object} dto.Response{data=importer.ImportResult}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      413 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /partner/feed [post]
func (h *PartnerHandler) ImportFeed(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	doc, err := io.ReadAll(c.Request.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodeRequestTooLarge, "Feed document is too large")
			return
		}
		h.BadRequest(c, "Failed to read request body")
		return
	}
	if len(doc) == 0 {
		h.BadRequest(c, "Feed document is empty")
		return
	}

	result, err := h.importService.ImportForUser(c.Request.Context(), userID, doc)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
