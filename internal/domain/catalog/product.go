package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/retailhub/backend/internal/domain/shared"
)

// Product represents an abstract catalog product owned by exactly one
// category. The (name, category) pair is unique; per-shop offers live in
// StockRecord.
type Product struct {
	shared.BaseAggregateRoot
	Name       string    `gorm:"type:varchar(200);not null;uniqueIndex:idx_product_name_category,priority:1"`
	CategoryID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_product_name_category,priority:2"`

	Category *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product under the given category
func NewProduct(name string, categoryID uuid.UUID) (*Product, error) {
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if categoryID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Category ID cannot be empty")
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		CategoryID:        categoryID,
	}, nil
}

func validateProductName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}
