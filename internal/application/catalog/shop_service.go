package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/retailhub/backend/internal/domain/catalog"
	"github.com/retailhub/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ShopService is the operator-facing side of the catalog: the state of the
// operator's own shop and the switch that opens or closes it for orders.
type ShopService struct {
	shopRepo catalog.ShopRepository
	logger   *zap.Logger
}

// NewShopService creates a new ShopService
func NewShopService(shopRepo catalog.ShopRepository, logger *zap.Logger) *ShopService {
	return &ShopService{
		shopRepo: shopRepo,
		logger:   logger,
	}
}

// GetForUser returns the shop linked to the operator account
func (s *ShopService) GetForUser(ctx context.Context, userID uuid.UUID) (*ShopResponse, error) {
	shop, err := s.ownedShop(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toShopResponse(shop), nil
}

// UpdateState opens or closes the operator's shop for new orders. A closed
// shop's offers disappear from the public listing until it reopens.
func (s *ShopService) UpdateState(ctx context.Context, userID uuid.UUID, req UpdateShopStateRequest) (*ShopResponse, error) {
	shop, err := s.ownedShop(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.AcceptingOrders == nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "accepting_orders is required")
	}
	if shop.AcceptingOrders != *req.AcceptingOrders {
		shop.ToggleAcceptingOrders()
		if err := s.shopRepo.Save(ctx, shop); err != nil {
			return nil, err
		}

		s.logger.Info("Shop state changed",
			zap.String("shop_id", shop.ID.String()),
			zap.Bool("accepting_orders", shop.AcceptingOrders))
	}

	return toShopResponse(shop), nil
}

func (s *ShopService) ownedShop(ctx context.Context, userID uuid.UUID) (*catalog.Shop, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}

	shop, err := s.shopRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("SHOP_NOT_FOUND", "No shop is linked to this account")
		}
		return nil, err
	}
	return shop, nil
}
