package ordering

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/retailhub/backend/internal/domain/catalog"
	"github.com/retailhub/backend/internal/domain/shared"
	"github.com/retailhub/backend/internal/domain/shared/valueobject"
)

// OrderState represents the lifecycle state of an order
type OrderState string

const (
	// OrderStateCart is the mutable basket phase. At most one CART order
	// exists per buyer at any time.
	OrderStateCart      OrderState = "CART"
	OrderStateNew       OrderState = "NEW"
	OrderStateConfirmed OrderState = "CONFIRMED"
	OrderStateAssembled OrderState = "ASSEMBLED"
	OrderStateSent      OrderState = "SENT"
	OrderStateDelivered OrderState = "DELIVERED"
	OrderStateCanceled  OrderState = "CANCELED"
)

// IsValid checks if the state is a valid OrderState
func (s OrderState) IsValid() bool {
	switch s {
	case OrderStateCart, OrderStateNew, OrderStateConfirmed, OrderStateAssembled,
		OrderStateSent, OrderStateDelivered, OrderStateCanceled:
		return true
	}
	return false
}

// String returns the string representation of OrderState
func (s OrderState) String() string {
	return string(s)
}

// IsTerminal returns true for states with no outgoing transitions
func (s OrderState) IsTerminal() bool {
	return s == OrderStateDelivered || s == OrderStateCanceled
}

// CanTransitionTo checks if the state can transition to the target state.
// Fulfillment is strictly forward-only; cancellation is reachable from any
// non-terminal state.
func (s OrderState) CanTransitionTo(target OrderState) bool {
	if s.IsTerminal() {
		return false
	}
	if target == OrderStateCanceled {
		return true
	}
	switch s {
	case OrderStateCart:
		return target == OrderStateNew
	case OrderStateNew:
		return target == OrderStateConfirmed
	case OrderStateConfirmed:
		return target == OrderStateAssembled
	case OrderStateAssembled:
		return target == OrderStateSent
	case OrderStateSent:
		return target == OrderStateDelivered
	}
	return false
}

// OrderItem is a line in an order. The (order, stock record) pair is unique;
// adding the same stock record again merges into the existing line.
type OrderItem struct {
	shared.BaseEntity
	OrderID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_item_order_record,priority:1"`
	StockRecordID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_item_order_record,priority:2"`
	Quantity      int       `gorm:"not null"`

	StockRecord *catalog.StockRecord `gorm:"foreignKey:StockRecordID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// NewOrderItem creates a new order line
func NewOrderItem(orderID, stockRecordID uuid.UUID, quantity int) (*OrderItem, error) {
	if orderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Order ID cannot be empty")
	}
	if stockRecordID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_STOCK_RECORD", "Stock record ID cannot be empty")
	}
	if quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}

	return &OrderItem{
		BaseEntity:    shared.NewBaseEntity(),
		OrderID:       orderID,
		StockRecordID: stockRecordID,
		Quantity:      quantity,
	}, nil
}

// LineTotal computes quantity times the current catalog price. The total is
// never stored: it always reflects the stock record's price at read time.
func (i *OrderItem) LineTotal() valueobject.Money {
	if i.StockRecord == nil {
		return valueobject.ZeroRUB()
	}
	return i.StockRecord.GetPriceMoney().MultiplyByInt(int64(i.Quantity))
}

// Order is the aggregate root for a buyer's order, from the mutable CART
// phase through fulfillment.
type Order struct {
	shared.BaseAggregateRoot
	BuyerID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	State     OrderState `gorm:"type:varchar(15);not null;index;default:'CART'"`
	ContactID *uuid.UUID `gorm:"type:uuid"` // SET NULL when the contact is deleted
	Items     []OrderItem

	ConfirmedAt *time.Time
	CanceledAt  *time.Time
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewCartOrder creates a fresh CART order for a buyer
func NewCartOrder(buyerID uuid.UUID) (*Order, error) {
	if buyerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BUYER", "Buyer ID cannot be empty")
	}

	return &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		BuyerID:           buyerID,
		State:             OrderStateCart,
		Items:             make([]OrderItem, 0),
	}, nil
}

// IsCart returns true while the order is still the buyer's live basket
func (o *Order) IsCart() bool {
	return o.State == OrderStateCart
}

// IsOwnedBy returns true if the order belongs to the given buyer
func (o *Order) IsOwnedBy(buyerID uuid.UUID) bool {
	return o.BuyerID == buyerID
}

// Confirm attaches the contact and transitions CART to NEW. A cart without
// lines cannot be confirmed. After this the basket engine no longer touches
// the order.
func (o *Order) Confirm(contactID uuid.UUID) error {
	if !o.State.CanTransitionTo(OrderStateNew) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot confirm order in %s state", o.State))
	}
	if contactID == uuid.Nil {
		return shared.NewDomainError("INVALID_CONTACT", "Contact ID cannot be empty")
	}
	if len(o.Items) == 0 {
		return shared.NewDomainError("EMPTY_BASKET", "Cannot confirm an empty basket")
	}

	now := time.Now()
	o.ContactID = &contactID
	o.State = OrderStateNew
	o.ConfirmedAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()

	return nil
}

// TransitionTo advances the order through the fulfillment states or cancels
// it from any non-terminal state.
func (o *Order) TransitionTo(target OrderState) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Unknown order state %q", target))
	}
	if target == OrderStateNew {
		// CART to NEW goes through Confirm so a contact is always attached
		return shared.NewDomainError("INVALID_STATE", "Use Confirm to submit a cart")
	}
	if !o.State.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot transition order from %s to %s", o.State, target))
	}

	now := time.Now()
	o.State = target
	if target == OrderStateCanceled {
		o.CanceledAt = &now
	}
	o.UpdatedAt = now
	o.IncrementVersion()

	return nil
}

// Total sums the line totals at current catalog prices
func (o *Order) Total() valueobject.Money {
	total := valueobject.ZeroRUB()
	for idx := range o.Items {
		total = total.MustAdd(o.Items[idx].LineTotal())
	}
	return total
}
