package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailhub/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ListOffersFilter represents filter options for the public catalog listing
type ListOffersFilter struct {
	ShopID     *uuid.UUID `form:"shop_id"`
	CategoryID *int       `form:"category_id"`
}

// CategoryResponse represents a category in API responses. The ID is the
// feed-facing external id shared across shops.
type CategoryResponse struct {
	ID   int       `json:"id"`
	UUID uuid.UUID `json:"uuid"`
	Name string    `json:"name"`
}

// ShopResponse represents a shop in API responses
type ShopResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	URL             string    `json:"url,omitempty"`
	AcceptingOrders bool      `json:"accepting_orders"`
	CreatedAt       time.Time `json:"created_at"`
}

// OfferResponse represents one shop's offer of a product in API responses
type OfferResponse struct {
	ID          uuid.UUID         `json:"id"`
	ProductName string            `json:"product_name"`
	Category    *CategoryResponse `json:"category,omitempty"`
	ShopName    string            `json:"shop_name"`
	Model       string            `json:"model,omitempty"`
	Quantity    int               `json:"quantity"`
	Price       decimal.Decimal   `json:"price"`
	PriceRRC    decimal.Decimal   `json:"price_rrc"`
	Parameters  map[string]string `json:"parameters"`
}

// UpdateShopStateRequest represents an operator request to open or close the
// shop for new orders
type UpdateShopStateRequest struct {
	AcceptingOrders *bool `json:"accepting_orders" binding:"required"`
}

func toCategoryResponse(category *catalog.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:   category.ExternalID,
		UUID: category.ID,
		Name: category.Name,
	}
}

func toShopResponse(shop *catalog.Shop) *ShopResponse {
	return &ShopResponse{
		ID:              shop.ID,
		Name:            shop.Name,
		URL:             shop.URL,
		AcceptingOrders: shop.AcceptingOrders,
		CreatedAt:       shop.CreatedAt,
	}
}

func toOfferResponse(record *catalog.StockRecord) *OfferResponse {
	resp := &OfferResponse{
		ID:         record.ID,
		Model:      record.Model,
		Quantity:   record.Quantity,
		Price:      record.Price,
		PriceRRC:   record.PriceRRC,
		Parameters: make(map[string]string, len(record.Values)),
	}
	if record.Product != nil {
		resp.ProductName = record.Product.Name
		if record.Product.Category != nil {
			resp.Category = toCategoryResponse(record.Product.Category)
		}
	}
	if record.Shop != nil {
		resp.ShopName = record.Shop.Name
	}
	for idx := range record.Values {
		value := &record.Values[idx]
		if value.Attribute != nil {
			resp.Parameters[value.Attribute.Name] = value.Value
		}
	}
	return resp
}
