package persistence

import (
	"context"

	appimport "github.com/retailhub/backend/internal/application/importer"
	"github.com/retailhub/backend/internal/domain/catalog"
	"gorm.io/gorm"
)

// GormImportTransactionScope implements the importer TransactionScope using
// GORM transactions, so a feed lands in the catalog atomically.
type GormImportTransactionScope struct {
	db *gorm.DB
}

// NewGormImportTransactionScope creates a new GormImportTransactionScope
func NewGormImportTransactionScope(db *gorm.DB) *GormImportTransactionScope {
	return &GormImportTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormImportTransactionScope) Execute(ctx context.Context, fn func(repos appimport.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormImportRepositories{tx: tx}
		return fn(repos)
	})
}

// gormImportRepositories exposes catalog repositories bound to one transaction
type gormImportRepositories struct {
	tx *gorm.DB
}

// Shops returns the shop repository scoped to the current transaction
func (r *gormImportRepositories) Shops() catalog.ShopRepository {
	return NewGormShopRepository(r.tx)
}

// Categories returns the category repository scoped to the current transaction
func (r *gormImportRepositories) Categories() catalog.CategoryRepository {
	return NewGormCategoryRepository(r.tx)
}

// Products returns the product repository scoped to the current transaction
func (r *gormImportRepositories) Products() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

// StockRecords returns the stock record repository scoped to the current transaction
func (r *gormImportRepositories) StockRecords() catalog.StockRecordRepository {
	return NewGormStockRecordRepository(r.tx)
}

// Attributes returns the attribute repository scoped to the current transaction
func (r *gormImportRepositories) Attributes() catalog.AttributeRepository {
	return NewGormAttributeRepository(r.tx)
}

// Ensure GormImportTransactionScope implements TransactionScope
var _ appimport.TransactionScope = (*GormImportTransactionScope)(nil)

// Ensure gormImportRepositories implements TransactionalRepositories
var _ appimport.TransactionalRepositories = (*gormImportRepositories)(nil)
