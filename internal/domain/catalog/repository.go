package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ShopRepository defines the persistence interface for shops
type ShopRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Shop, error)
	FindByName(ctx context.Context, name string) (*Shop, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*Shop, error)
	// GetOrCreateByName resolves a shop by its natural key, creating it when
	// absent. Safe against concurrent callers racing on the same name.
	GetOrCreateByName(ctx context.Context, name string) (*Shop, error)
	Save(ctx context.Context, shop *Shop) error
	FindAll(ctx context.Context) ([]Shop, error)
}

// CategoryRepository defines the persistence interface for categories
type CategoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	FindByExternalID(ctx context.Context, externalID int) (*Category, error)
	// GetOrCreate resolves a category by external id, creating it with the
	// given name when absent. An existing category keeps its original name.
	GetOrCreate(ctx context.Context, externalID int, name string) (*Category, error)
	// AssociateShop adds the shop to the category's offering set. Adding an
	// existing association is a no-op; associations are never removed here.
	AssociateShop(ctx context.Context, categoryID, shopID uuid.UUID) error
	FindAll(ctx context.Context) ([]Category, error)
	FindByShop(ctx context.Context, shopID uuid.UUID) ([]Category, error)
}

// ProductRepository defines the persistence interface for products
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindByNameAndCategory(ctx context.Context, name string, categoryID uuid.UUID) (*Product, error)
	// GetOrCreate resolves a product by its (name, category) natural key,
	// creating it when absent.
	GetOrCreate(ctx context.Context, name string, categoryID uuid.UUID) (*Product, error)
}

// StockFilter narrows stock record listings
type StockFilter struct {
	ShopID             *uuid.UUID
	CategoryExternalID *int
	AcceptingOnly      bool
}

// StockRecordRepository defines the persistence interface for stock records
type StockRecordRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*StockRecord, error)
	FindByProductAndShop(ctx context.Context, productID, shopID uuid.UUID) (*StockRecord, error)
	// Upsert creates the record or updates the existing row for the same
	// (product, shop) pair in place.
	Upsert(ctx context.Context, record *StockRecord) error
	// FindDetailed loads records with product, shop and attribute values
	// preloaded for catalog listings and basket views.
	FindDetailed(ctx context.Context, filter StockFilter) ([]StockRecord, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]StockRecord, error)
}

// AttributeRepository defines the persistence interface for attributes and
// their per-record values
type AttributeRepository interface {
	FindByName(ctx context.Context, name string) (*Attribute, error)
	// GetOrCreateByName resolves an attribute by its globally unique name,
	// creating it when absent.
	GetOrCreateByName(ctx context.Context, name string) (*Attribute, error)
	// UpsertValue creates the value or updates the existing row for the same
	// (stock record, attribute) pair in place.
	UpsertValue(ctx context.Context, value *AttributeValue) error
	FindValuesByStockRecord(ctx context.Context, stockRecordID uuid.UUID) ([]AttributeValue, error)
}
