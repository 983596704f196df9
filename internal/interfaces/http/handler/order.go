package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/retailhub/backend/internal/application/ordering"
	"github.com/retailhub/backend/internal/interfaces/http/dto"
)

// OrderHandler handles order HTTP requests
type OrderHandler struct {
	BaseHandler
	orderService *ordering.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *ordering.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// Confirm godoc
// @Summary      Confirm the basket as an order
// @Description  Submits the open cart with the given shipping contact
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        request body ordering.ConfirmOrderRequest true "Shipping contact"
// @Success      200 {object} dto.Response{data=ordering.OrderResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /orders/confirm [post]
func (h *OrderHandler) Confirm(c *gin.Context) {
	buyerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req ordering.ConfirmOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	order, err := h.orderService.Confirm(c.Request.Context(), buyerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// List godoc
// @Summary      List own submitted orders
// @Tags         orders
// @Produce      json
// @Success      200 {object} dto.Response{data=[]ordering.OrderResponse}
// @Security     BearerAuth
// @Router       /orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	buyerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	orders, err := h.orderService.ListForBuyer(c.Request.Context(), buyerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, orders)
}

// GetByID godoc
// @Summary      Get one of own orders
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order ID"
// @Success      200 {object} dto.Response{data=ordering.OrderResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /orders/{id} [get]
func (h *OrderHandler) GetByID(c *gin.Context) {
	buyerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.GetForBuyer(c.Request.Context(), buyerID, uuid.MustParse(req.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// Transition godoc
// @Summary      Advance an order's state
// @Description  Forward-only fulfillment transitions plus cancel, shop accounts only
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Order ID"
// @Param        request body ordering.TransitionOrderRequest true "Target state"
// @Success      200 {object} dto.Response{data=ordering.OrderResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /orders/{id}/state [put]
func (h *OrderHandler) Transition(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var body ordering.TransitionOrderRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.BindError(c, err)
		return
	}

	order, err := h.orderService.Transition(c.Request.Context(), uuid.MustParse(req.ID), body)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}
