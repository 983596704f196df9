package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/retailhub/backend/internal/domain/catalog"
	"github.com/retailhub/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CatalogService serves the buyer-facing read side of the catalog: shops,
// categories and the searchable offer listing.
type CatalogService struct {
	shopRepo     catalog.ShopRepository
	categoryRepo catalog.CategoryRepository
	stockRepo    catalog.StockRecordRepository
	logger       *zap.Logger
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(
	shopRepo catalog.ShopRepository,
	categoryRepo catalog.CategoryRepository,
	stockRepo catalog.StockRecordRepository,
	logger *zap.Logger,
) *CatalogService {
	return &CatalogService{
		shopRepo:     shopRepo,
		categoryRepo: categoryRepo,
		stockRepo:    stockRepo,
		logger:       logger,
	}
}

// ListShops returns all shops
func (s *CatalogService) ListShops(ctx context.Context) ([]ShopResponse, error) {
	shops, err := s.shopRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]ShopResponse, 0, len(shops))
	for idx := range shops {
		responses = append(responses, *toShopResponse(&shops[idx]))
	}
	return responses, nil
}

// ListCategories returns all categories
func (s *CatalogService) ListCategories(ctx context.Context) ([]CategoryResponse, error) {
	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]CategoryResponse, 0, len(categories))
	for idx := range categories {
		responses = append(responses, *toCategoryResponse(&categories[idx]))
	}
	return responses, nil
}

// ListCategoriesByShop returns the categories a shop has published offers in
func (s *CatalogService) ListCategoriesByShop(ctx context.Context, shopID uuid.UUID) ([]CategoryResponse, error) {
	if shopID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SHOP", "Shop ID cannot be empty")
	}

	categories, err := s.categoryRepo.FindByShop(ctx, shopID)
	if err != nil {
		return nil, err
	}

	responses := make([]CategoryResponse, 0, len(categories))
	for idx := range categories {
		responses = append(responses, *toCategoryResponse(&categories[idx]))
	}
	return responses, nil
}

// ListOffers returns offers matching the filter. Only shops currently
// accepting orders appear in the listing.
func (s *CatalogService) ListOffers(ctx context.Context, filter ListOffersFilter) ([]OfferResponse, error) {
	records, err := s.stockRepo.FindDetailed(ctx, catalog.StockFilter{
		ShopID:             filter.ShopID,
		CategoryExternalID: filter.CategoryID,
		AcceptingOnly:      true,
	})
	if err != nil {
		return nil, err
	}

	responses := make([]OfferResponse, 0, len(records))
	for idx := range records {
		responses = append(responses, *toOfferResponse(&records[idx]))
	}
	return responses, nil
}

// GetOffer returns a single offer with full details
func (s *CatalogService) GetOffer(ctx context.Context, id uuid.UUID) (*OfferResponse, error) {
	record, err := s.stockRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toOfferResponse(record), nil
}
