package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/retailhub/backend/internal/application/ordering"
	"github.com/retailhub/backend/internal/interfaces/http/dto"
)

// BasketHandler handles buyer basket HTTP requests
type BasketHandler struct {
	BaseHandler
	basketService *ordering.BasketService
}

// NewBasketHandler creates a new basket handler
func NewBasketHandler(basketService *ordering.BasketService) *BasketHandler {
	return &BasketHandler{
		basketService: basketService,
	}
}

// View godoc
// @Summary      View basket
// @Tags         basket
// @Produce      json
// @Success      200 {object} dto.Response{data=ordering.BasketResponse}
// @Security     BearerAuth
// @Router       /basket [get]
func (h *BasketHandler) View(c *gin.Context) {
	buyerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	basket, err := h.basketService.View(c.Request.Context(), buyerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, basket)
}

// AddItem godoc
// @Summary      Add an item to the basket
// @Description  Adding the same stock record again merges quantities
// @Tags         basket
// @Accept       json
// @Produce      json
// @Param        request body ordering.AddBasketItemRequest true "Item to add"
// @Success      200 {object} dto.Response{data=ordering.BasketResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /basket/items [post]
func (h *BasketHandler) AddItem(c *gin.Context) {
	buyerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req ordering.AddBasketItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	basket, err := h.basketService.AddItem(c.Request.Context(), buyerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, basket)
}

// RemoveItem godoc
// @Summary      Remove an item from the basket
// @Tags         basket
// @Produce      json
// @Param        id path string true "Basket item ID"
// @Success      200 {object} dto.Response{data=ordering.BasketResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /basket/items/{id} [delete]
func (h *BasketHandler) RemoveItem(c *gin.Context) {
	buyerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	basket, err := h.basketService.RemoveItem(c.Request.Context(), buyerID, uuid.MustParse(req.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, basket)
}
