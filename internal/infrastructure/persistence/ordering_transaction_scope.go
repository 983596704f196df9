package persistence

import (
	"context"

	appordering "github.com/retailhub/backend/internal/application/ordering"
	"github.com/retailhub/backend/internal/domain/catalog"
	"github.com/retailhub/backend/internal/domain/ordering"
	"gorm.io/gorm"
)

// GormOrderingTransactionScope implements the ordering TransactionScope
// using GORM transactions.
type GormOrderingTransactionScope struct {
	db *gorm.DB
}

// NewGormOrderingTransactionScope creates a new GormOrderingTransactionScope
func NewGormOrderingTransactionScope(db *gorm.DB) *GormOrderingTransactionScope {
	return &GormOrderingTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormOrderingTransactionScope) Execute(ctx context.Context, fn func(repos appordering.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormOrderingRepositories{tx: tx}
		return fn(repos)
	})
}

// gormOrderingRepositories exposes ordering repositories bound to one transaction
type gormOrderingRepositories struct {
	tx *gorm.DB
}

// Orders returns the order repository scoped to the current transaction
func (r *gormOrderingRepositories) Orders() ordering.OrderRepository {
	return NewGormOrderRepository(r.tx)
}

// Contacts returns the contact repository scoped to the current transaction
func (r *gormOrderingRepositories) Contacts() ordering.ContactRepository {
	return NewGormContactRepository(r.tx)
}

// StockRecords returns the stock record repository scoped to the current transaction
func (r *gormOrderingRepositories) StockRecords() catalog.StockRecordRepository {
	return NewGormStockRecordRepository(r.tx)
}

// Ensure GormOrderingTransactionScope implements TransactionScope
var _ appordering.TransactionScope = (*GormOrderingTransactionScope)(nil)

// Ensure gormOrderingRepositories implements TransactionalRepositories
var _ appordering.TransactionalRepositories = (*gormOrderingRepositories)(nil)
