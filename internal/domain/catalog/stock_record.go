package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailhub/backend/internal/domain/shared"
	"github.com/retailhub/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// StockRecord represents one shop's offer of a product: price, recommended
// retail price, available quantity and the shop's model label. The
// (product, shop) pair is unique; re-importing the same pair updates the
// record in place.
type StockRecord struct {
	shared.BaseAggregateRoot
	ProductID  uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_stock_product_shop,priority:1"`
	ShopID     uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_stock_product_shop,priority:2"`
	ExternalID int             `gorm:"not null"` // feed-supplied id, informational only
	Model      string          `gorm:"type:varchar(80)"`
	Quantity   int             `gorm:"not null;default:0"`
	Price      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PriceRRC   decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Product *Product `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Shop    *Shop    `gorm:"foreignKey:ShopID;constraint:OnDelete:CASCADE"`
	Values  []AttributeValue
}

// TableName returns the table name for GORM
func (StockRecord) TableName() string {
	return "stock_records"
}

// NewStockRecord creates a new stock record for a (product, shop) pair
func NewStockRecord(productID, shopID uuid.UUID, externalID int, model string, quantity int, price, priceRRC valueobject.Money) (*StockRecord, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if shopID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SHOP", "Shop ID cannot be empty")
	}

	record := &StockRecord{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         productID,
		ShopID:            shopID,
	}
	if err := record.SetOffer(externalID, model, quantity, price, priceRRC); err != nil {
		return nil, err
	}

	return record, nil
}

// SetOffer replaces the feed-supplied fields of the record. It is used both
// on creation and when a re-import updates the record in place.
func (r *StockRecord) SetOffer(externalID int, model string, quantity int, price, priceRRC valueobject.Money) error {
	if externalID <= 0 {
		return shared.NewDomainError("INVALID_EXTERNAL_ID", "Stock record external id must be positive")
	}
	if quantity < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if priceRRC.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Recommended retail price cannot be negative")
	}
	if len(model) > 80 {
		return shared.NewDomainError("INVALID_MODEL", "Model label cannot exceed 80 characters")
	}

	r.ExternalID = externalID
	r.Model = model
	r.Quantity = quantity
	r.Price = price.Amount()
	r.PriceRRC = priceRRC.Amount()
	r.UpdatedAt = time.Now()

	return nil
}

// GetPriceMoney returns the current unit price as a Money value object
func (r *StockRecord) GetPriceMoney() valueobject.Money {
	return valueobject.NewMoneyRUB(r.Price)
}

// GetPriceRRCMoney returns the recommended retail price as a Money value object
func (r *StockRecord) GetPriceRRCMoney() valueobject.Money {
	return valueobject.NewMoneyRUB(r.PriceRRC)
}

// InStock returns true if the shop reports a positive quantity
func (r *StockRecord) InStock() bool {
	return r.Quantity > 0
}
