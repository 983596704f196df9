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

// GormCategoryRepository implements CategoryRepository using GORM
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewGormCategoryRepository creates a new GormCategoryRepository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// FindByID finds a category by its ID
func (r *GormCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	var category catalog.Category
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

// FindByExternalID finds a category by its feed identifier
func (r *GormCategoryRepository) FindByExternalID(ctx context.Context, externalID int) (*catalog.Category, error) {
	var category catalog.Category
	if err := r.db.WithContext(ctx).First(&category, "external_id = ?", externalID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

// GetOrCreate resolves a category by external id, creating it when absent.
// Conflicting inserts are ignored, so an existing category keeps the name
// it was first registered with.
func (r *GormCategoryRepository) GetOrCreate(ctx context.Context, externalID int, name string) (*catalog.Category, error) {
	category, err := catalog.NewCategory(externalID, name)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "external_id"}},
			DoNothing: true,
		}).
		Create(category).Error; err != nil {
		return nil, err
	}
	return r.FindByExternalID(ctx, externalID)
}

// AssociateShop adds the shop to the category's offering set
func (r *GormCategoryRepository) AssociateShop(ctx context.Context, categoryID, shopID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Exec("INSERT INTO shop_categories (category_id, shop_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
			categoryID, shopID).Error
}

// FindAll returns every category, ordered by external id
func (r *GormCategoryRepository) FindAll(ctx context.Context) ([]catalog.Category, error) {
	var categories []catalog.Category
	if err := r.db.WithContext(ctx).Order("external_id").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// FindByShop returns the categories the given shop offers goods in
func (r *GormCategoryRepository) FindByShop(ctx context.Context, shopID uuid.UUID) ([]catalog.Category, error) {
	var categories []catalog.Category
	if err := r.db.WithContext(ctx).
		Joins("JOIN shop_categories sc ON sc.category_id = categories.id").
		Where("sc.shop_id = ?", shopID).
		Order("categories.external_id").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}
