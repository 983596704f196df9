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

// GormShopRepository implements ShopRepository using GORM
type GormShopRepository struct {
	db *gorm.DB
}

// NewGormShopRepository creates a new GormShopRepository
func NewGormShopRepository(db *gorm.DB) *GormShopRepository {
	return &GormShopRepository{db: db}
}

// FindByID finds a shop by its ID
func (r *GormShopRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Shop, error) {
	var shop catalog.Shop
	if err := r.db.WithContext(ctx).First(&shop, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &shop, nil
}

// FindByName finds a shop by its unique name
func (r *GormShopRepository) FindByName(ctx context.Context, name string) (*catalog.Shop, error) {
	var shop catalog.Shop
	if err := r.db.WithContext(ctx).First(&shop, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &shop, nil
}

// FindByUserID finds the shop linked to the given operator account
func (r *GormShopRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*catalog.Shop, error) {
	var shop catalog.Shop
	if err := r.db.WithContext(ctx).First(&shop, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &shop, nil
}

// GetOrCreateByName resolves a shop by name, creating it when absent.
// The insert ignores name conflicts so concurrent callers converge on the
// row that won the race.
func (r *GormShopRepository) GetOrCreateByName(ctx context.Context, name string) (*catalog.Shop, error) {
	shop, err := catalog.NewShop(name)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).
		Create(shop).Error; err != nil {
		return nil, err
	}
	return r.FindByName(ctx, name)
}

// Save persists the shop
func (r *GormShopRepository) Save(ctx context.Context, shop *catalog.Shop) error {
	return r.db.WithContext(ctx).Save(shop).Error
}

// FindAll returns every shop, ordered by name
func (r *GormShopRepository) FindAll(ctx context.Context) ([]catalog.Shop, error) {
	var shops []catalog.Shop
	if err := r.db.WithContext(ctx).Order("name").Find(&shops).Error; err != nil {
		return nil, err
	}
	return shops, nil
}
