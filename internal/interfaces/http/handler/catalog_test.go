package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appcatalog "github.com/retailhub/backend/internal/application/catalog"
	"github.com/retailhub/backend/internal/domain/catalog"
	"github.com/retailhub/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockShopRepository is a mock implementation of catalog.ShopRepository
type MockShopRepository struct {
	mock.Mock
}

func (m *MockShopRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Shop, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Shop), args.Error(1)
}

func (m *MockShopRepository) FindByName(ctx context.Context, name string) (*catalog.Shop, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Shop), args.Error(1)
}

func (m *MockShopRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*catalog.Shop, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Shop), args.Error(1)
}

func (m *MockShopRepository) GetOrCreateByName(ctx context.Context, name string) (*catalog.Shop, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Shop), args.Error(1)
}

func (m *MockShopRepository) Save(ctx context.Context, shop *catalog.Shop) error {
	args := m.Called(ctx, shop)
	return args.Error(0)
}

func (m *MockShopRepository) FindAll(ctx context.Context) ([]catalog.Shop, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Shop), args.Error(1)
}

// MockCategoryRepository is a mock implementation of catalog.CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindByExternalID(ctx context.Context, externalID int) (*catalog.Category, error) {
	args := m.Called(ctx, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) GetOrCreate(ctx context.Context, externalID int, name string) (*catalog.Category, error) {
	args := m.Called(ctx, externalID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) AssociateShop(ctx context.Context, categoryID, shopID uuid.UUID) error {
	args := m.Called(ctx, categoryID, shopID)
	return args.Error(0)
}

func (m *MockCategoryRepository) FindAll(ctx context.Context) ([]catalog.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindByShop(ctx context.Context, shopID uuid.UUID) ([]catalog.Category, error) {
	args := m.Called(ctx, shopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Category), args.Error(1)
}

// MockStockRecordRepository is a mock implementation of catalog.StockRecordRepository
type MockStockRecordRepository struct {
	mock.Mock
}

func (m *MockStockRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.StockRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.StockRecord), args.Error(1)
}

func (m *MockStockRecordRepository) FindByProductAndShop(ctx context.Context, productID, shopID uuid.UUID) (*catalog.StockRecord, error) {
	args := m.Called(ctx, productID, shopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.StockRecord), args.Error(1)
}

func (m *MockStockRecordRepository) Upsert(ctx context.Context, record *catalog.StockRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockStockRecordRepository) FindDetailed(ctx context.Context, filter catalog.StockFilter) ([]catalog.StockRecord, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.StockRecord), args.Error(1)
}

func (m *MockStockRecordRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.StockRecord, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.StockRecord), args.Error(1)
}

type catalogHandlerFixture struct {
	shops      *MockShopRepository
	categories *MockCategoryRepository
	stocks     *MockStockRecordRepository
	router     *gin.Engine
}

func newCatalogHandlerFixture() *catalogHandlerFixture {
	f := &catalogHandlerFixture{
		shops:      new(MockShopRepository),
		categories: new(MockCategoryRepository),
		stocks:     new(MockStockRecordRepository),
	}

	svc := appcatalog.NewCatalogService(f.shops, f.categories, f.stocks, zap.NewNop())
	h := NewCatalogHandler(svc)

	f.router = gin.New()
	f.router.GET("/catalog/shops", h.ListShops)
	f.router.GET("/catalog/categories", h.ListCategories)
	f.router.GET("/catalog/shops/:id/categories", h.ListShopCategories)
	f.router.GET("/catalog/offers", h.ListOffers)
	f.router.GET("/catalog/offers/:id", h.GetOffer)
	return f
}

func mustShop(t *testing.T, name string) *catalog.Shop {
	t.Helper()
	shop, err := catalog.NewShop(name)
	require.NoError(t, err)
	return shop
}

func TestCatalogHandlerListShops(t *testing.T) {
	f := newCatalogHandlerFixture()

	f.shops.On("FindAll", mock.Anything).Return([]catalog.Shop{
		*mustShop(t, "Evotor"),
		*mustShop(t, "Svyaznoy"),
	}, nil)

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/catalog/shops", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Evotor")
	assert.Contains(t, w.Body.String(), "Svyaznoy")
}

func TestCatalogHandlerListShopCategories(t *testing.T) {
	f := newCatalogHandlerFixture()

	category, err := catalog.NewCategory(224, "Smartphones")
	require.NoError(t, err)
	shopID := uuid.New()
	f.categories.On("FindByShop", mock.Anything, shopID).Return([]catalog.Category{*category}, nil)

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/catalog/shops/"+shopID.String()+"/categories", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Smartphones")
}

func TestCatalogHandlerListShopCategories_BadID(t *testing.T) {
	f := newCatalogHandlerFixture()

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/catalog/shops/not-a-uuid/categories", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCatalogHandlerListOffers_FilterByShop(t *testing.T) {
	f := newCatalogHandlerFixture()

	shopID := uuid.New()
	f.stocks.On("FindDetailed", mock.Anything, mock.MatchedBy(func(filter catalog.StockFilter) bool {
		return filter.ShopID != nil && *filter.ShopID == shopID && filter.AcceptingOnly
	})).Return([]catalog.StockRecord{}, nil)

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/catalog/offers?shop_id="+shopID.String(), nil))

	assert.Equal(t, http.StatusOK, w.Code)
	f.stocks.AssertExpectations(t)
}

func TestCatalogHandlerGetOffer_NotFound(t *testing.T) {
	f := newCatalogHandlerFixture()

	id := uuid.New()
	f.stocks.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/catalog/offers/"+id.String(), nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}
