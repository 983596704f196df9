package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/retailhub/backend/internal/domain/ordering"
	"github.com/retailhub/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// setupOrderingTestDB extends the catalog schema with the ordering tables
func setupOrderingTestDB(t *testing.T) *gorm.DB {
	db := setupCatalogTestDB(t)

	statements := []string{
		`CREATE TABLE orders (
			id TEXT PRIMARY KEY,
			buyer_id TEXT NOT NULL,
			state TEXT NOT NULL DEFAULT 'CART',
			contact_id TEXT,
			confirmed_at DATETIME,
			canceled_at DATETIME,
			version INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,
		`CREATE UNIQUE INDEX idx_orders_buyer_cart ON orders(buyer_id) WHERE state = 'CART'`,
		`CREATE TABLE order_items (
			id TEXT PRIMARY KEY,
			order_id TEXT NOT NULL,
			stock_record_id TEXT NOT NULL,
			quantity INTEGER NOT NULL,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			UNIQUE(order_id, stock_record_id)
		)`,
		`CREATE TABLE contacts (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			city TEXT NOT NULL,
			street TEXT NOT NULL,
			house TEXT,
			apartment TEXT,
			phone TEXT NOT NULL,
			version INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,
	}
	for _, stmt := range statements {
		require.NoError(t, db.Exec(stmt).Error)
	}

	return db
}

func TestGormOrderRepository_GetOrCreateCartForBuyer(t *testing.T) {
	db := setupOrderingTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()
	buyerID := uuid.New()

	cart, err := repo.GetOrCreateCartForBuyer(ctx, buyerID)
	require.NoError(t, err)
	assert.Equal(t, ordering.OrderStateCart, cart.State)
	assert.Equal(t, buyerID, cart.BuyerID)

	again, err := repo.GetOrCreateCartForBuyer(ctx, buyerID)
	require.NoError(t, err)
	assert.Equal(t, cart.ID, again.ID)

	var count int64
	require.NoError(t, db.Model(&ordering.Order{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestGormOrderRepository_UpsertItemMergesQuantities(t *testing.T) {
	db := setupOrderingTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	record := seedStockRecord(t, db, "Svyaznoy", "iPhone XS Max", 4216292)
	cart, err := repo.GetOrCreateCartForBuyer(ctx, uuid.New())
	require.NoError(t, err)

	first, err := ordering.NewOrderItem(cart.ID, record.ID, 2)
	require.NoError(t, err)
	require.NoError(t, repo.UpsertItem(ctx, first))

	second, err := ordering.NewOrderItem(cart.ID, record.ID, 3)
	require.NoError(t, err)
	require.NoError(t, repo.UpsertItem(ctx, second))

	stored, err := repo.FindByID(ctx, cart.ID)
	require.NoError(t, err)
	require.Len(t, stored.Items, 1)
	assert.Equal(t, first.ID, stored.Items[0].ID)
	assert.Equal(t, 5, stored.Items[0].Quantity)
	require.NotNil(t, stored.Items[0].StockRecord)
	assert.Equal(t, "iPhone XS Max", stored.Items[0].StockRecord.Product.Name)
}

func TestGormOrderRepository_DeleteItem(t *testing.T) {
	db := setupOrderingTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	record := seedStockRecord(t, db, "Svyaznoy", "iPhone XS Max", 4216292)
	cart, err := repo.GetOrCreateCartForBuyer(ctx, uuid.New())
	require.NoError(t, err)

	item, err := ordering.NewOrderItem(cart.ID, record.ID, 2)
	require.NoError(t, err)
	require.NoError(t, repo.UpsertItem(ctx, item))

	require.NoError(t, repo.DeleteItem(ctx, item.ID))

	_, err = repo.FindItemByID(ctx, item.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormOrderRepository_FindSubmittedForBuyer(t *testing.T) {
	db := setupOrderingTestDB(t)
	repo := NewGormOrderRepository(db)
	contactRepo := NewGormContactRepository(db)
	ctx := context.Background()
	buyerID := uuid.New()

	record := seedStockRecord(t, db, "Svyaznoy", "iPhone XS Max", 4216292)
	contact, err := ordering.NewContact(buyerID, "Moscow", "Tverskaya", "1", "2", "+79990000000")
	require.NoError(t, err)
	require.NoError(t, contactRepo.Save(ctx, contact))

	// Submit a first order
	cart, err := repo.GetOrCreateCartForBuyer(ctx, buyerID)
	require.NoError(t, err)
	item, err := ordering.NewOrderItem(cart.ID, record.ID, 1)
	require.NoError(t, err)
	require.NoError(t, repo.UpsertItem(ctx, item))
	cart, err = repo.FindCartForBuyer(ctx, buyerID)
	require.NoError(t, err)
	require.NoError(t, cart.Confirm(contact.ID))
	require.NoError(t, repo.Save(ctx, cart))
	firstID := cart.ID

	// A fresh cart takes its place; the submitted order must not absorb it
	time.Sleep(10 * time.Millisecond)
	fresh, err := repo.GetOrCreateCartForBuyer(ctx, buyerID)
	require.NoError(t, err)
	assert.NotEqual(t, firstID, fresh.ID)

	orders, err := repo.FindSubmittedForBuyer(ctx, buyerID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, firstID, orders[0].ID)
	assert.Equal(t, ordering.OrderStateNew, orders[0].State)
	require.Len(t, orders[0].Items, 1)

	t.Run("other buyers see nothing", func(t *testing.T) {
		orders, err := repo.FindSubmittedForBuyer(ctx, uuid.New())
		require.NoError(t, err)
		assert.Empty(t, orders)
	})
}

func TestGormOrderRepository_SaveRejectsStaleVersion(t *testing.T) {
	db := setupOrderingTestDB(t)
	repo := NewGormOrderRepository(db)
	contactRepo := NewGormContactRepository(db)
	ctx := context.Background()
	buyerID := uuid.New()

	record := seedStockRecord(t, db, "Svyaznoy", "iPhone XS Max", 4216292)
	contact, err := ordering.NewContact(buyerID, "Moscow", "Tverskaya", "1", "2", "+79990000000")
	require.NoError(t, err)
	require.NoError(t, contactRepo.Save(ctx, contact))

	cart, err := repo.GetOrCreateCartForBuyer(ctx, buyerID)
	require.NoError(t, err)
	item, err := ordering.NewOrderItem(cart.ID, record.ID, 1)
	require.NoError(t, err)
	require.NoError(t, repo.UpsertItem(ctx, item))
	cart, err = repo.FindCartForBuyer(ctx, buyerID)
	require.NoError(t, err)
	require.NoError(t, cart.Confirm(contact.ID))
	require.NoError(t, repo.Save(ctx, cart))

	// Two operators load the same order
	first, err := repo.FindByID(ctx, cart.ID)
	require.NoError(t, err)
	second, err := repo.FindByID(ctx, cart.ID)
	require.NoError(t, err)

	require.NoError(t, first.TransitionTo(ordering.OrderStateConfirmed))
	require.NoError(t, repo.Save(ctx, first))

	// The second copy is now stale; its cancel must not win
	require.NoError(t, second.TransitionTo(ordering.OrderStateCanceled))
	err = repo.Save(ctx, second)
	assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)

	stored, err := repo.FindByID(ctx, cart.ID)
	require.NoError(t, err)
	assert.Equal(t, ordering.OrderStateConfirmed, stored.State)
	assert.Nil(t, stored.CanceledAt)
	assert.Equal(t, first.Version, stored.Version)
}

func TestGormContactRepository_SaveAndDelete(t *testing.T) {
	db := setupOrderingTestDB(t)
	repo := NewGormContactRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	contact, err := ordering.NewContact(userID, "Moscow", "Tverskaya", "1", "2", "+79990000000")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, contact))

	contacts, err := repo.FindByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, "Moscow", contacts[0].City)

	require.NoError(t, repo.Delete(ctx, contact.ID))

	_, err = repo.FindByID(ctx, contact.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
