package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/retailhub/backend/internal/domain/catalog"
	"github.com/retailhub/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormAttributeRepository implements AttributeRepository using GORM
type GormAttributeRepository struct {
	db *gorm.DB
}

// NewGormAttributeRepository creates a new GormAttributeRepository
func NewGormAttributeRepository(db *gorm.DB) *GormAttributeRepository {
	return &GormAttributeRepository{db: db}
}

// FindByName finds an attribute by its unique name
func (r *GormAttributeRepository) FindByName(ctx context.Context, name string) (*catalog.Attribute, error) {
	var attribute catalog.Attribute
	if err := r.db.WithContext(ctx).First(&attribute, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &attribute, nil
}

// GetOrCreateByName resolves an attribute by name, creating it when absent
func (r *GormAttributeRepository) GetOrCreateByName(ctx context.Context, name string) (*catalog.Attribute, error) {
	attribute, err := catalog.NewAttribute(name)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).
		Create(attribute).Error; err != nil {
		return nil, err
	}
	return r.FindByName(ctx, name)
}

// UpsertValue creates the value or overwrites the existing row for the same
// (stock record, attribute) pair
func (r *GormAttributeRepository) UpsertValue(ctx context.Context, value *catalog.AttributeValue) error {
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "stock_record_id"}, {Name: "attribute_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(value).Error
}

// FindValuesByStockRecord returns the record's attribute values with the
// attribute definitions preloaded
func (r *GormAttributeRepository) FindValuesByStockRecord(ctx context.Context, stockRecordID uuid.UUID) ([]catalog.AttributeValue, error) {
	var values []catalog.AttributeValue
	if err := r.db.WithContext(ctx).
		Preload("Attribute").
		Where("stock_record_id = ?", stockRecordID).
		Find(&values).Error; err != nil {
		return nil, err
	}
	return values, nil
}
