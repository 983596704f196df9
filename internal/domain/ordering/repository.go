package ordering

import (
	"context"

	"github.com/google/uuid"
)

// OrderRepository defines the persistence interface for orders
type OrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	// FindCartForBuyer returns the buyer's single CART order with items and
	// stock records preloaded, or shared.ErrNotFound when no cart exists.
	FindCartForBuyer(ctx context.Context, buyerID uuid.UUID) (*Order, error)
	// GetOrCreateCartForBuyer resolves the buyer's CART order, creating a
	// fresh one when none exists. At most one CART row per buyer may ever
	// result, also under concurrent callers.
	GetOrCreateCartForBuyer(ctx context.Context, buyerID uuid.UUID) (*Order, error)
	// FindSubmittedForBuyer lists the buyer's orders in every state except
	// CART, newest first, with items and stock records preloaded.
	FindSubmittedForBuyer(ctx context.Context, buyerID uuid.UUID) ([]Order, error)
	Save(ctx context.Context, order *Order) error

	// FindItemByID loads a single order line
	FindItemByID(ctx context.Context, itemID uuid.UUID) (*OrderItem, error)
	// UpsertItem creates the line or merges into the existing row for the
	// same (order, stock record) pair by adding the quantities.
	UpsertItem(ctx context.Context, item *OrderItem) error
	DeleteItem(ctx context.Context, itemID uuid.UUID) error
}

// ContactRepository defines the persistence interface for buyer contacts
type ContactRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Contact, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]Contact, error)
	Save(ctx context.Context, contact *Contact) error
	// Delete removes the contact; orders referencing it keep existing with a
	// cleared contact reference.
	Delete(ctx context.Context, id uuid.UUID) error
}
