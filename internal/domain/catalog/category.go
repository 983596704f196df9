package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/retailhub/backend/internal/domain/shared"
)

// Category represents a product category shared across shops.
// Its identity for import matching is the external numeric id supplied by
// feeds; the name is set on first creation and never overwritten by later
// imports ("first name wins").
type Category struct {
	shared.BaseAggregateRoot
	ExternalID int    `gorm:"not null;uniqueIndex"`
	Name       string `gorm:"type:varchar(100);not null"`
	Shops      []Shop `gorm:"many2many:shop_categories"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a new category with its feed-supplied external id
func NewCategory(externalID int, name string) (*Category, error) {
	if externalID <= 0 {
		return nil, shared.NewDomainError("INVALID_EXTERNAL_ID", "Category external id must be positive")
	}
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}

	return &Category{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ExternalID:        externalID,
		Name:              strings.TrimSpace(name),
	}, nil
}

// IsOfferedBy returns true if the category is associated with the given shop
func (c *Category) IsOfferedBy(shopID uuid.UUID) bool {
	for _, s := range c.Shops {
		if s.ID == shopID {
			return true
		}
	}
	return false
}

func validateCategoryName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot exceed 100 characters")
	}
	return nil
}
