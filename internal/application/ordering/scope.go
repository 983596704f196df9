package ordering

import (
	"context"

	"github.com/retailhub/backend/internal/domain/catalog"
	"github.com/retailhub/backend/internal/domain/ordering"
)

// TransactionScope runs basket and order mutations as one atomic unit of
// work so the single-cart and merge invariants hold under concurrent calls.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes the ordering repositories scoped to the
// running transaction. All of them share one underlying transaction.
type TransactionalRepositories interface {
	Orders() ordering.OrderRepository
	Contacts() ordering.ContactRepository
	StockRecords() catalog.StockRecordRepository
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
