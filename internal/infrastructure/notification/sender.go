package notification

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Sender delivers account and order notifications to users. The transport is
// an infrastructure concern; callers only hand over the payload.
type Sender interface {
	// RegistrationConfirm sends the email confirmation key to a freshly
	// registered account.
	RegistrationConfirm(ctx context.Context, email, key string) error

	// OrderStatusChanged tells the buyer their order moved to a new state
	OrderStatusChanged(ctx context.Context, email string, orderID uuid.UUID, state string) error
}

// LogSender writes notifications to the application log instead of an
// outbound channel. Used in development and tests; production deployments
// swap in an SMTP-backed sender.
type LogSender struct {
	logger *zap.Logger
}

// NewLogSender creates a new LogSender
func NewLogSender(logger *zap.Logger) *LogSender {
	return &LogSender{logger: logger}
}

// RegistrationConfirm logs the confirmation key delivery
func (s *LogSender) RegistrationConfirm(_ context.Context, email, key string) error {
	s.logger.Info("Registration confirmation issued",
		zap.String("email", email),
		zap.String("key", key))
	return nil
}

// OrderStatusChanged logs the order status notification
func (s *LogSender) OrderStatusChanged(_ context.Context, email string, orderID uuid.UUID, state string) error {
	s.logger.Info("Order status notification",
		zap.String("email", email),
		zap.String("order_id", orderID.String()),
		zap.String("state", state))
	return nil
}
