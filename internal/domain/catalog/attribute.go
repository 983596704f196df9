package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/retailhub/backend/internal/domain/shared"
)

// Attribute is a catalog-wide characteristic vocabulary entry (e.g. "color").
// Names are globally unique; shops share attributes across feeds.
type Attribute struct {
	shared.BaseAggregateRoot
	Name string `gorm:"type:varchar(100);not null;uniqueIndex"`
}

// TableName returns the table name for GORM
func (Attribute) TableName() string {
	return "attributes"
}

// NewAttribute creates a new attribute
func NewAttribute(name string) (*Attribute, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Attribute name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "Attribute name cannot exceed 100 characters")
	}

	return &Attribute{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
	}, nil
}

// AttributeValue is the value of an attribute for one stock record. The
// (stock record, attribute) pair is unique; re-import updates the value in
// place.
type AttributeValue struct {
	shared.BaseEntity
	StockRecordID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_value_record_attribute,priority:1"`
	AttributeID   uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_value_record_attribute,priority:2"`
	Value         string    `gorm:"type:varchar(200);not null"`

	Attribute *Attribute `gorm:"foreignKey:AttributeID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (AttributeValue) TableName() string {
	return "attribute_values"
}

// NewAttributeValue creates a new attribute value for a stock record
func NewAttributeValue(stockRecordID, attributeID uuid.UUID, value string) (*AttributeValue, error) {
	if stockRecordID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_STOCK_RECORD", "Stock record ID cannot be empty")
	}
	if attributeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ATTRIBUTE", "Attribute ID cannot be empty")
	}
	if len(value) > 200 {
		return nil, shared.NewDomainError("INVALID_VALUE", "Attribute value cannot exceed 200 characters")
	}

	return &AttributeValue{
		BaseEntity:    shared.NewBaseEntity(),
		StockRecordID: stockRecordID,
		AttributeID:   attributeID,
		Value:         value,
	}, nil
}

// SetValue updates the stored value in place
func (v *AttributeValue) SetValue(value string) error {
	if len(value) > 200 {
		return shared.NewDomainError("INVALID_VALUE", "Attribute value cannot exceed 200 characters")
	}
	v.Value = value
	v.UpdatedAt = time.Now()
	return nil
}
