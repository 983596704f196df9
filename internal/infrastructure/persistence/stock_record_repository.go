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

// GormStockRecordRepository implements StockRecordRepository using GORM
type GormStockRecordRepository struct {
	db *gorm.DB
}

// NewGormStockRecordRepository creates a new GormStockRecordRepository
func NewGormStockRecordRepository(db *gorm.DB) *GormStockRecordRepository {
	return &GormStockRecordRepository{db: db}
}

// FindByID finds a stock record with product, shop and attribute values preloaded
func (r *GormStockRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.StockRecord, error) {
	var record catalog.StockRecord
	if err := r.detailedQuery(ctx).First(&record, "stock_records.id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// FindByProductAndShop finds a stock record by its natural key
func (r *GormStockRecordRepository) FindByProductAndShop(ctx context.Context, productID, shopID uuid.UUID) (*catalog.StockRecord, error) {
	var record catalog.StockRecord
	if err := r.db.WithContext(ctx).
		Where("product_id = ? AND shop_id = ?", productID, shopID).
		First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// Upsert creates the record or updates the existing (product, shop) row in
// place. The caller's record is rewritten with the identity of the stored
// row so dependent attribute values reference the surviving ID.
func (r *GormStockRecordRepository) Upsert(ctx context.Context, record *catalog.StockRecord) error {
	if err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "product_id"}, {Name: "shop_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"external_id", "model", "quantity", "price", "price_rrc", "updated_at",
			}),
		}).
		Create(record).Error; err != nil {
		return err
	}

	stored, err := r.FindByProductAndShop(ctx, record.ProductID, record.ShopID)
	if err != nil {
		return err
	}
	record.ID = stored.ID
	record.CreatedAt = stored.CreatedAt
	record.Version = stored.Version
	return nil
}

// FindDetailed loads records with product, category, shop and attribute
// values preloaded, narrowed by the filter
func (r *GormStockRecordRepository) FindDetailed(ctx context.Context, filter catalog.StockFilter) ([]catalog.StockRecord, error) {
	query := r.detailedQuery(ctx)

	if filter.ShopID != nil {
		query = query.Where("stock_records.shop_id = ?", *filter.ShopID)
	}
	if filter.CategoryExternalID != nil {
		query = query.
			Joins("JOIN products p ON p.id = stock_records.product_id").
			Joins("JOIN categories c ON c.id = p.category_id").
			Where("c.external_id = ?", *filter.CategoryExternalID)
	}
	if filter.AcceptingOnly {
		query = query.
			Joins("JOIN shops s ON s.id = stock_records.shop_id").
			Where("s.accepting_orders = ?", true)
	}

	var records []catalog.StockRecord
	if err := query.Order("stock_records.created_at").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// FindByIDs loads the given records with details preloaded
func (r *GormStockRecordRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.StockRecord, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var records []catalog.StockRecord
	if err := r.detailedQuery(ctx).Where("stock_records.id IN ?", ids).Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *GormStockRecordRepository) detailedQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&catalog.StockRecord{}).
		Preload("Product").
		Preload("Product.Category").
		Preload("Shop").
		Preload("Values").
		Preload("Values.Attribute")
}
