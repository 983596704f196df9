package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/retailhub/backend/internal/application/catalog"
	"github.com/retailhub/backend/internal/interfaces/http/dto"
)

// CatalogHandler handles public catalog HTTP requests
type CatalogHandler struct {
	BaseHandler
	catalogService *catalog.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *catalog.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

// ListShops godoc
// @Summary      List shops
// @Tags         catalog
// @Produce      json
// @Success      200 {object} dto.Response{data=[]catalog.ShopResponse}
// @Router       /catalog/shops [get]
func (h *CatalogHandler) ListShops(c *gin.Context) {
	shops, err := h.catalogService.ListShops(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, shops)
}

// ListCategories godoc
// @Summary      List categories
// @Tags         catalog
// @Produce      json
// @Success      200 {object} dto.Response{data=[]catalog.CategoryResponse}
// @Router       /catalog/categories [get]
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalogService.ListCategories(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, categories)
}

// ListShopCategories godoc
// @Summary      List categories carried by one shop
// @Tags         catalog
// @Produce      json
// @Param        id path string true "Shop ID"
// @Success      200 {object} dto.Response{data=[]catalog.CategoryResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /catalog/shops/{id}/categories [get]
func (h *CatalogHandler) ListShopCategories(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid shop ID")
		return
	}
	shopID := uuid.MustParse(req.ID)

	categories, err := h.catalogService.ListCategoriesByShop(c.Request.Context(), shopID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, categories)
}

// ListOffers godoc
// @Summary      List offers
// @Description  All stock records with product, shop, price and attributes;
// @Description  filterable by shop and category, closed shops excluded
// @Tags         catalog
// @Produce      json
// @Param        shop_id query string false "Shop ID"
// @Param        category_id query int false "Category external ID"
// @Success      200 {object} dto.Response{data=[]catalog.OfferResponse}
// @Router       /catalog/offers [get]
func (h *CatalogHandler) ListOffers(c *gin.Context) {
	var filter catalog.ListOffersFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid filter parameters")
		return
	}

	offers, err := h.catalogService.ListOffers(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, offers)
}

// GetOffer godoc
// @Summary      Get one offer
// @Tags         catalog
// @Produce      json
// @Param        id path string true "Stock record ID"
// @Success      200 {object} dto.Response{data=catalog.OfferResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /catalog/offers/{id} [get]
func (h *CatalogHandler) GetOffer(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid offer ID")
		return
	}

	offer, err := h.catalogService.GetOffer(c.Request.Context(), uuid.MustParse(req.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, offer)
}
