package ordering

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/retailhub/backend/internal/domain/ordering"
	"github.com/retailhub/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// BasketService manages the buyer's single live CART order. Mutations run
// under a transaction so concurrent adds for the same buyer end up in one
// cart with merged lines.
type BasketService struct {
	orderRepo ordering.OrderRepository
	scope     TransactionScope
	logger    *zap.Logger
}

// NewBasketService creates a new BasketService
func NewBasketService(orderRepo ordering.OrderRepository, scope TransactionScope, logger *zap.Logger) *BasketService {
	return &BasketService{
		orderRepo: orderRepo,
		scope:     scope,
		logger:    logger,
	}
}

// AddItem puts a stock record into the buyer's basket, creating the cart on
// first use and merging quantities when the record is already in it.
func (s *BasketService) AddItem(ctx context.Context, buyerID uuid.UUID, req AddBasketItemRequest) (*BasketResponse, error) {
	if buyerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BUYER", "Buyer ID cannot be empty")
	}

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if _, err := repos.StockRecords().FindByID(ctx, req.StockRecordID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewDomainError("STOCK_RECORD_NOT_FOUND", "Stock record not found")
			}
			return err
		}

		cart, err := repos.Orders().GetOrCreateCartForBuyer(ctx, buyerID)
		if err != nil {
			return err
		}

		// the upsert merges quantities atomically, so a stale in-memory
		// cart cannot lose a concurrent add for the same record
		item, err := ordering.NewOrderItem(cart.ID, req.StockRecordID, req.Quantity)
		if err != nil {
			return err
		}

		return repos.Orders().UpsertItem(ctx, item)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Basket item added",
		zap.String("buyer_id", buyerID.String()),
		zap.String("stock_record_id", req.StockRecordID.String()),
		zap.Int("quantity", req.Quantity))

	return s.View(ctx, buyerID)
}

// RemoveItem deletes a line from the buyer's basket. Lines in other buyers'
// baskets or in already submitted orders are reported as not found.
func (s *BasketService) RemoveItem(ctx context.Context, buyerID, itemID uuid.UUID) (*BasketResponse, error) {
	if buyerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BUYER", "Buyer ID cannot be empty")
	}

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		item, err := repos.Orders().FindItemByID(ctx, itemID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return itemNotFound()
			}
			return err
		}

		order, err := repos.Orders().FindByID(ctx, item.OrderID)
		if err != nil {
			return err
		}
		if !order.IsOwnedBy(buyerID) || !order.IsCart() {
			// do not reveal lines the buyer cannot touch
			return itemNotFound()
		}

		return repos.Orders().DeleteItem(ctx, itemID)
	})
	if err != nil {
		return nil, err
	}

	return s.View(ctx, buyerID)
}

// View returns the basket with per-line and grand totals at current catalog
// prices. A buyer without a cart gets an empty basket, no cart is created.
func (s *BasketService) View(ctx context.Context, buyerID uuid.UUID) (*BasketResponse, error) {
	if buyerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BUYER", "Buyer ID cannot be empty")
	}

	cart, err := s.orderRepo.FindCartForBuyer(ctx, buyerID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return emptyBasketResponse(), nil
		}
		return nil, err
	}

	return toBasketResponse(cart), nil
}

func itemNotFound() error {
	return shared.NewDomainError("ITEM_NOT_FOUND", "Order item not found")
}
