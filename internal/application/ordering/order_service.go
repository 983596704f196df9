package ordering

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/retailhub/backend/internal/domain/ordering"
	"github.com/retailhub/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// OrderSubmittedNotifier is told when a basket becomes a submitted order,
// after the transaction committed. Implementations must not block.
type OrderSubmittedNotifier interface {
	OrderSubmitted(ctx context.Context, buyerID, orderID uuid.UUID)
}

// OrderService drives the order lifecycle after the basket phase: confirming
// a cart into a NEW order and walking it through fulfillment.
type OrderService struct {
	orderRepo ordering.OrderRepository
	scope     TransactionScope
	notifier  OrderSubmittedNotifier
	logger    *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo ordering.OrderRepository, scope TransactionScope, notifier OrderSubmittedNotifier, logger *zap.Logger) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		scope:     scope,
		notifier:  notifier,
		logger:    logger,
	}
}

// Confirm submits the buyer's basket: the contact must belong to the buyer,
// the basket must exist and have lines, and the order leaves the CART state
// in the same transaction.
func (s *OrderService) Confirm(ctx context.Context, buyerID uuid.UUID, req ConfirmOrderRequest) (*OrderResponse, error) {
	if buyerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BUYER", "Buyer ID cannot be empty")
	}

	var confirmed *ordering.Order
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		contact, err := repos.Contacts().FindByID(ctx, req.ContactID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return contactNotFound()
			}
			return err
		}
		if !contact.IsOwnedBy(buyerID) {
			// someone else's contact looks exactly like a missing one
			return contactNotFound()
		}

		cart, err := repos.Orders().FindCartForBuyer(ctx, buyerID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewDomainError("EMPTY_BASKET", "Cannot confirm an empty basket")
			}
			return err
		}

		if err := cart.Confirm(contact.ID); err != nil {
			return err
		}
		if err := repos.Orders().Save(ctx, cart); err != nil {
			return err
		}

		confirmed = cart
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Order confirmed",
		zap.String("order_id", confirmed.ID.String()),
		zap.String("buyer_id", buyerID.String()))

	if s.notifier != nil {
		s.notifier.OrderSubmitted(ctx, buyerID, confirmed.ID)
	}

	return toOrderResponse(confirmed), nil
}

// ListForBuyer returns the buyer's submitted orders, newest first. The live
// basket never appears here.
func (s *OrderService) ListForBuyer(ctx context.Context, buyerID uuid.UUID) ([]OrderResponse, error) {
	if buyerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BUYER", "Buyer ID cannot be empty")
	}

	orders, err := s.orderRepo.FindSubmittedForBuyer(ctx, buyerID)
	if err != nil {
		return nil, err
	}

	responses := make([]OrderResponse, 0, len(orders))
	for idx := range orders {
		responses = append(responses, *toOrderResponse(&orders[idx]))
	}
	return responses, nil
}

// GetForBuyer returns one submitted order with ownership enforced. Carts and
// other buyers' orders are reported as not found.
func (s *OrderService) GetForBuyer(ctx context.Context, buyerID, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.IsOwnedBy(buyerID) || order.IsCart() {
		return nil, shared.ErrNotFound
	}
	return toOrderResponse(order), nil
}

// Transition is the operator entry point for advancing or canceling an
// order. Submitting a cart goes through Confirm, never through here.
func (s *OrderService) Transition(ctx context.Context, orderID uuid.UUID, req TransitionOrderRequest) (*OrderResponse, error) {
	target := ordering.OrderState(req.State)

	var order *ordering.Order
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		order, err = repos.Orders().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if err := order.TransitionTo(target); err != nil {
			return err
		}
		return repos.Orders().Save(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Order state changed",
		zap.String("order_id", orderID.String()),
		zap.String("state", target.String()))

	return toOrderResponse(order), nil
}

func contactNotFound() error {
	return shared.NewDomainError("CONTACT_NOT_FOUND", "Contact not found")
}
