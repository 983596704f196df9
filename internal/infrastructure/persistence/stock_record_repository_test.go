package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/retailhub/backend/internal/domain/catalog"
	"github.com/retailhub/backend/internal/domain/shared"
	"github.com/retailhub/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupCatalogTestDB creates an in-memory SQLite database with the catalog tables
func setupCatalogTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	statements := []string{
		`CREATE TABLE shops (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			url TEXT,
			user_id TEXT UNIQUE,
			accepting_orders INTEGER NOT NULL DEFAULT 1,
			version INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,
		`CREATE TABLE categories (
			id TEXT PRIMARY KEY,
			external_id INTEGER NOT NULL UNIQUE,
			name TEXT NOT NULL,
			version INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,
		`CREATE TABLE shop_categories (
			category_id TEXT NOT NULL,
			shop_id TEXT NOT NULL,
			PRIMARY KEY (category_id, shop_id)
		)`,
		`CREATE TABLE products (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			category_id TEXT NOT NULL,
			version INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			UNIQUE(name, category_id)
		)`,
		`CREATE TABLE stock_records (
			id TEXT PRIMARY KEY,
			product_id TEXT NOT NULL,
			shop_id TEXT NOT NULL,
			external_id INTEGER NOT NULL,
			model TEXT,
			quantity INTEGER NOT NULL DEFAULT 0,
			price NUMERIC NOT NULL,
			price_rrc NUMERIC NOT NULL,
			version INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			UNIQUE(product_id, shop_id)
		)`,
		`CREATE TABLE attributes (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			version INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,
		`CREATE TABLE attribute_values (
			id TEXT PRIMARY KEY,
			stock_record_id TEXT NOT NULL,
			attribute_id TEXT NOT NULL,
			value TEXT NOT NULL,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			UNIQUE(stock_record_id, attribute_id)
		)`,
	}
	for _, stmt := range statements {
		require.NoError(t, db.Exec(stmt).Error)
	}

	return db
}

func mustMoney(t *testing.T, value string) valueobject.Money {
	t.Helper()
	money, err := valueobject.NewMoneyFromString(value)
	require.NoError(t, err)
	return money
}

// seedStockRecord creates a shop, category, product and one stock record
func seedStockRecord(t *testing.T, db *gorm.DB, shopName, productName string, externalID int) *catalog.StockRecord {
	t.Helper()
	ctx := context.Background()

	shop, err := NewGormShopRepository(db).GetOrCreateByName(ctx, shopName)
	require.NoError(t, err)
	category, err := NewGormCategoryRepository(db).GetOrCreate(ctx, 224, "Smartphones")
	require.NoError(t, err)
	product, err := NewGormProductRepository(db).GetOrCreate(ctx, productName, category.ID)
	require.NoError(t, err)

	record, err := catalog.NewStockRecord(product.ID, shop.ID, externalID, "apple/iphone",
		14, mustMoney(t, "110000"), mustMoney(t, "116990"))
	require.NoError(t, err)
	require.NoError(t, NewGormStockRecordRepository(db).Upsert(ctx, record))
	return record
}

func TestGormStockRecordRepository_UpsertCreatesThenUpdatesInPlace(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewGormStockRecordRepository(db)
	ctx := context.Background()

	first := seedStockRecord(t, db, "Svyaznoy", "iPhone XS Max", 4216292)

	second, err := catalog.NewStockRecord(first.ProductID, first.ShopID, 4216292, "apple/iphone/xs-max",
		9, mustMoney(t, "105000"), mustMoney(t, "116990"))
	require.NoError(t, err)
	require.NoError(t, repo.Upsert(ctx, second))

	// The conflicting upsert must land on the existing row
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&catalog.StockRecord{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	stored, err := repo.FindByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, 9, stored.Quantity)
	assert.Equal(t, "apple/iphone/xs-max", stored.Model)
	assert.Equal(t, "105000", stored.Price.String())
}

func TestGormStockRecordRepository_FindByIDPreloadsDetails(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewGormStockRecordRepository(db)
	attrRepo := NewGormAttributeRepository(db)
	ctx := context.Background()

	record := seedStockRecord(t, db, "Svyaznoy", "iPhone XS Max", 4216292)

	attribute, err := attrRepo.GetOrCreateByName(ctx, "Color")
	require.NoError(t, err)
	value, err := catalog.NewAttributeValue(record.ID, attribute.ID, "golden")
	require.NoError(t, err)
	require.NoError(t, attrRepo.UpsertValue(ctx, value))

	stored, err := repo.FindByID(ctx, record.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Product)
	require.NotNil(t, stored.Product.Category)
	require.NotNil(t, stored.Shop)
	assert.Equal(t, "iPhone XS Max", stored.Product.Name)
	assert.Equal(t, 224, stored.Product.Category.ExternalID)
	assert.Equal(t, "Svyaznoy", stored.Shop.Name)
	require.Len(t, stored.Values, 1)
	require.NotNil(t, stored.Values[0].Attribute)
	assert.Equal(t, "Color", stored.Values[0].Attribute.Name)
	assert.Equal(t, "golden", stored.Values[0].Value)
}

func TestGormStockRecordRepository_FindDetailedFilters(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewGormStockRecordRepository(db)
	shopRepo := NewGormShopRepository(db)
	ctx := context.Background()

	seedStockRecord(t, db, "Svyaznoy", "iPhone XS Max", 4216292)
	seedStockRecord(t, db, "Evotor", "Galaxy S9", 4216313)

	t.Run("filters by shop", func(t *testing.T) {
		shop, err := shopRepo.FindByName(ctx, "Evotor")
		require.NoError(t, err)

		records, err := repo.FindDetailed(ctx, catalog.StockFilter{ShopID: &shop.ID})
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "Galaxy S9", records[0].Product.Name)
	})

	t.Run("hides shops not accepting orders", func(t *testing.T) {
		shop, err := shopRepo.FindByName(ctx, "Svyaznoy")
		require.NoError(t, err)
		shop.ToggleAcceptingOrders()
		require.NoError(t, shopRepo.Save(ctx, shop))

		records, err := repo.FindDetailed(ctx, catalog.StockFilter{AcceptingOnly: true})
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "Evotor", records[0].Shop.Name)
	})

	t.Run("filters by category external id", func(t *testing.T) {
		externalID := 224
		records, err := repo.FindDetailed(ctx, catalog.StockFilter{CategoryExternalID: &externalID})
		require.NoError(t, err)
		assert.Len(t, records, 2)

		missing := 999
		records, err = repo.FindDetailed(ctx, catalog.StockFilter{CategoryExternalID: &missing})
		require.NoError(t, err)
		assert.Empty(t, records)
	})
}

func TestGormStockRecordRepository_FindByProductAndShopNotFound(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewGormStockRecordRepository(db)

	_, err := repo.FindByProductAndShop(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormAttributeRepository_UpsertValueOverwrites(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewGormAttributeRepository(db)
	ctx := context.Background()

	record := seedStockRecord(t, db, "Svyaznoy", "iPhone XS Max", 4216292)
	attribute, err := repo.GetOrCreateByName(ctx, "Color")
	require.NoError(t, err)

	first, err := catalog.NewAttributeValue(record.ID, attribute.ID, "golden")
	require.NoError(t, err)
	require.NoError(t, repo.UpsertValue(ctx, first))

	second, err := catalog.NewAttributeValue(record.ID, attribute.ID, "black")
	require.NoError(t, err)
	require.NoError(t, repo.UpsertValue(ctx, second))

	values, err := repo.FindValuesByStockRecord(ctx, record.ID)
	require.NoError(t, err)
	require.Len(t, values, 1)
	assert.Equal(t, "black", values[0].Value)
}
