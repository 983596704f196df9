package importer

import (
	"context"

	"github.com/retailhub/backend/internal/domain/catalog"
)

// TransactionScope runs a feed import as one atomic unit of work. Either the
// whole document lands in the catalog or the store is left unchanged.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes the catalog repositories scoped to the
// running transaction. All of them share one underlying transaction.
type TransactionalRepositories interface {
	Shops() catalog.ShopRepository
	Categories() catalog.CategoryRepository
	Products() catalog.ProductRepository
	StockRecords() catalog.StockRecordRepository
	Attributes() catalog.AttributeRepository
}

// NoOpTransactionScope executes the unit of work without a real transaction.
// Useful in tests where the repositories are mocks.
type NoOpTransactionScope struct {
	repos TransactionalRepositories
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over fixed repositories
func NewNoOpTransactionScope(repos TransactionalRepositories) *NoOpTransactionScope {
	return &NoOpTransactionScope{repos: repos}
}

// Execute runs fn directly against the configured repositories
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s.repos)
}
