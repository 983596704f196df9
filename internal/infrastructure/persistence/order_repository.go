package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/retailhub/backend/internal/domain/ordering"
	"github.com/retailhub/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order with its items and their stock records preloaded
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*ordering.Order, error) {
	var order ordering.Order
	if err := r.orderQuery(ctx).First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindCartForBuyer returns the buyer's single CART order
func (r *GormOrderRepository) FindCartForBuyer(ctx context.Context, buyerID uuid.UUID) (*ordering.Order, error) {
	var order ordering.Order
	if err := r.orderQuery(ctx).
		Where("buyer_id = ? AND state = ?", buyerID, ordering.OrderStateCart).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// GetOrCreateCartForBuyer resolves the buyer's CART order, creating one when
// absent. A partial unique index on (buyer_id) for CART rows backs the
// insert, so concurrent callers converge on a single cart.
func (r *GormOrderRepository) GetOrCreateCartForBuyer(ctx context.Context, buyerID uuid.UUID) (*ordering.Order, error) {
	cart, err := r.FindCartForBuyer(ctx, buyerID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	fresh, err := ordering.NewCartOrder(buyerID)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(fresh).Error; err != nil {
		return nil, err
	}
	return r.FindCartForBuyer(ctx, buyerID)
}

// FindSubmittedForBuyer lists the buyer's non-cart orders, newest first
func (r *GormOrderRepository) FindSubmittedForBuyer(ctx context.Context, buyerID uuid.UUID) ([]ordering.Order, error) {
	var orders []ordering.Order
	if err := r.orderQuery(ctx).
		Where("buyer_id = ? AND state <> ?", buyerID, ordering.OrderStateCart).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Save persists the order's own columns with an optimistic version check:
// the update only matches the row at the version the aggregate was loaded
// with. A zero-row update means another transaction already advanced the
// order. Items are managed through UpsertItem and DeleteItem.
func (r *GormOrderRepository) Save(ctx context.Context, order *ordering.Order) error {
	result := r.db.WithContext(ctx).
		Model(&ordering.Order{}).
		Where("id = ? AND version = ?", order.ID, order.Version-1).
		Updates(map[string]interface{}{
			"state":        order.State,
			"contact_id":   order.ContactID,
			"confirmed_at": order.ConfirmedAt,
			"canceled_at":  order.CanceledAt,
			"version":      order.Version,
			"updated_at":   order.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// FindItemByID loads a single order line with its stock record preloaded
func (r *GormOrderRepository) FindItemByID(ctx context.Context, itemID uuid.UUID) (*ordering.OrderItem, error) {
	var item ordering.OrderItem
	if err := r.db.WithContext(ctx).
		Preload("StockRecord").
		Preload("StockRecord.Product").
		Preload("StockRecord.Shop").
		First(&item, "id = ?", itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// UpsertItem creates the line or merges into the existing (order, stock
// record) row by adding the quantities. The merge happens in the database
// so concurrent adds for the same record cannot lose an update.
func (r *GormOrderRepository) UpsertItem(ctx context.Context, item *ordering.OrderItem) error {
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "order_id"}, {Name: "stock_record_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity":   gorm.Expr("order_items.quantity + excluded.quantity"),
				"updated_at": item.UpdatedAt,
			}),
		}).
		Create(item).Error
}

// DeleteItem removes a single order line
func (r *GormOrderRepository) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&ordering.OrderItem{}, "id = ?", itemID).Error
}

func (r *GormOrderRepository) orderQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&ordering.Order{}).
		Preload("Items").
		Preload("Items.StockRecord").
		Preload("Items.StockRecord.Product").
		Preload("Items.StockRecord.Shop")
}
