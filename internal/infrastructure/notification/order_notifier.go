package notification

import (
	"context"

	"github.com/google/uuid"
	"github.com/retailhub/backend/internal/domain/identity"
	"github.com/retailhub/backend/internal/domain/ordering"
	"go.uber.org/zap"
)

// OrderNotifier resolves the buyer's email and hands the order submission
// off to the sender. Delivery failures are logged, never surfaced: the order
// is already committed by the time this runs.
type OrderNotifier struct {
	userRepo identity.UserRepository
	sender   Sender
	logger   *zap.Logger
}

// NewOrderNotifier creates a new OrderNotifier
func NewOrderNotifier(userRepo identity.UserRepository, sender Sender, logger *zap.Logger) *OrderNotifier {
	return &OrderNotifier{
		userRepo: userRepo,
		sender:   sender,
		logger:   logger,
	}
}

// OrderSubmitted notifies the buyer their basket became an order
func (n *OrderNotifier) OrderSubmitted(ctx context.Context, buyerID, orderID uuid.UUID) {
	user, err := n.userRepo.FindByID(ctx, buyerID)
	if err != nil {
		n.logger.Warn("Cannot notify buyer, user lookup failed",
			zap.String("buyer_id", buyerID.String()),
			zap.Error(err))
		return
	}

	if err := n.sender.OrderStatusChanged(ctx, user.Email, orderID, string(ordering.OrderStateNew)); err != nil {
		n.logger.Warn("Order notification delivery failed",
			zap.String("order_id", orderID.String()),
			zap.Error(err))
	}
}
