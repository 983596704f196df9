package ordering

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailhub/backend/internal/domain/ordering"
	"github.com/shopspring/decimal"
)

// ==================== Basket DTOs ====================

// AddBasketItemRequest represents a request to put a stock record into the basket
type AddBasketItemRequest struct {
	StockRecordID uuid.UUID `json:"stock_record_id" binding:"required"`
	Quantity      int       `json:"quantity" binding:"required,min=1"`
}

// BasketItemResponse represents one basket line in API responses
type BasketItemResponse struct {
	ID            uuid.UUID       `json:"id"`
	StockRecordID uuid.UUID       `json:"stock_record_id"`
	ProductName   string          `json:"product_name"`
	ShopName      string          `json:"shop_name"`
	Quantity      int             `json:"quantity"`
	Price         decimal.Decimal `json:"price"`
	LineTotal     decimal.Decimal `json:"line_total"`
}

// BasketResponse represents the buyer's basket in API responses
type BasketResponse struct {
	OrderID *uuid.UUID           `json:"order_id,omitempty"`
	Items   []BasketItemResponse `json:"items"`
	Total   decimal.Decimal      `json:"total"`
}

// ==================== Order DTOs ====================

// ConfirmOrderRequest represents a request to submit the basket as an order
type ConfirmOrderRequest struct {
	ContactID uuid.UUID `json:"contact_id" binding:"required"`
}

// TransitionOrderRequest represents an administrative state change
type TransitionOrderRequest struct {
	State string `json:"state" binding:"required"`
}

// OrderItemResponse represents one order line in API responses
type OrderItemResponse struct {
	ID            uuid.UUID       `json:"id"`
	StockRecordID uuid.UUID       `json:"stock_record_id"`
	ProductName   string          `json:"product_name"`
	ShopName      string          `json:"shop_name"`
	Quantity      int             `json:"quantity"`
	Price         decimal.Decimal `json:"price"`
	LineTotal     decimal.Decimal `json:"line_total"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID          uuid.UUID           `json:"id"`
	State       string              `json:"state"`
	ContactID   *uuid.UUID          `json:"contact_id,omitempty"`
	Items       []OrderItemResponse `json:"items"`
	Total       decimal.Decimal     `json:"total"`
	ConfirmedAt *time.Time          `json:"confirmed_at,omitempty"`
	CanceledAt  *time.Time          `json:"canceled_at,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
}

// ==================== Contact DTOs ====================

// CreateContactRequest represents a request to add a shipping contact
type CreateContactRequest struct {
	City      string `json:"city" binding:"required,min=1,max=50"`
	Street    string `json:"street" binding:"required,min=1,max=100"`
	House     string `json:"house" binding:"max=15"`
	Apartment string `json:"apartment" binding:"max=15"`
	Phone     string `json:"phone" binding:"required,phone,max=20"`
}

// UpdateContactRequest represents a request to edit a shipping contact
type UpdateContactRequest struct {
	City      string `json:"city" binding:"required,min=1,max=50"`
	Street    string `json:"street" binding:"required,min=1,max=100"`
	House     string `json:"house" binding:"max=15"`
	Apartment string `json:"apartment" binding:"max=15"`
	Phone     string `json:"phone" binding:"required,phone,max=20"`
}

// ContactResponse represents a contact in API responses
type ContactResponse struct {
	ID        uuid.UUID `json:"id"`
	City      string    `json:"city"`
	Street    string    `json:"street"`
	House     string    `json:"house,omitempty"`
	Apartment string    `json:"apartment,omitempty"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

// ==================== Converters ====================

func toBasketItemResponse(item *ordering.OrderItem) BasketItemResponse {
	resp := BasketItemResponse{
		ID:            item.ID,
		StockRecordID: item.StockRecordID,
		Quantity:      item.Quantity,
		LineTotal:     item.LineTotal().Amount(),
	}
	if item.StockRecord != nil {
		resp.Price = item.StockRecord.Price
		if item.StockRecord.Product != nil {
			resp.ProductName = item.StockRecord.Product.Name
		}
		if item.StockRecord.Shop != nil {
			resp.ShopName = item.StockRecord.Shop.Name
		}
	}
	return resp
}

func toBasketResponse(order *ordering.Order) *BasketResponse {
	resp := &BasketResponse{
		Items: make([]BasketItemResponse, 0, len(order.Items)),
		Total: order.Total().Amount(),
	}
	orderID := order.ID
	resp.OrderID = &orderID
	for idx := range order.Items {
		resp.Items = append(resp.Items, toBasketItemResponse(&order.Items[idx]))
	}
	return resp
}

func emptyBasketResponse() *BasketResponse {
	return &BasketResponse{
		Items: make([]BasketItemResponse, 0),
		Total: decimal.Zero,
	}
}

func toOrderItemResponse(item *ordering.OrderItem) OrderItemResponse {
	resp := OrderItemResponse{
		ID:            item.ID,
		StockRecordID: item.StockRecordID,
		Quantity:      item.Quantity,
		LineTotal:     item.LineTotal().Amount(),
	}
	if item.StockRecord != nil {
		resp.Price = item.StockRecord.Price
		if item.StockRecord.Product != nil {
			resp.ProductName = item.StockRecord.Product.Name
		}
		if item.StockRecord.Shop != nil {
			resp.ShopName = item.StockRecord.Shop.Name
		}
	}
	return resp
}

func toOrderResponse(order *ordering.Order) *OrderResponse {
	resp := &OrderResponse{
		ID:          order.ID,
		State:       order.State.String(),
		ContactID:   order.ContactID,
		Items:       make([]OrderItemResponse, 0, len(order.Items)),
		Total:       order.Total().Amount(),
		ConfirmedAt: order.ConfirmedAt,
		CanceledAt:  order.CanceledAt,
		CreatedAt:   order.CreatedAt,
	}
	for idx := range order.Items {
		resp.Items = append(resp.Items, toOrderItemResponse(&order.Items[idx]))
	}
	return resp
}

func toContactResponse(contact *ordering.Contact) *ContactResponse {
	return &ContactResponse{
		ID:        contact.ID,
		City:      contact.City,
		Street:    contact.Street,
		House:     contact.House,
		Apartment: contact.Apartment,
		Phone:     contact.Phone,
		CreatedAt: contact.CreatedAt,
	}
}
