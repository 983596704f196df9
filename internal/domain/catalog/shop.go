package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/retailhub/backend/internal/domain/shared"
)

// Shop represents a supplier shop publishing its catalog into the aggregator.
// Shop name is the natural key used to match import runs to existing shops.
type Shop struct {
	shared.BaseAggregateRoot
	Name            string     `gorm:"type:varchar(100);not null;uniqueIndex"`
	URL             string     `gorm:"type:varchar(255)"`
	UserID          *uuid.UUID `gorm:"type:uuid;uniqueIndex"` // linked operator account, at most one
	AcceptingOrders bool       `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Shop) TableName() string {
	return "shops"
}

// NewShop creates a new shop
func NewShop(name string) (*Shop, error) {
	if err := validateShopName(name); err != nil {
		return nil, err
	}

	return &Shop{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		AcceptingOrders:   true,
	}, nil
}

// LinkUser links an operator account to the shop
func (s *Shop) LinkUser(userID uuid.UUID) error {
	if userID == uuid.Nil {
		return shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if s.UserID != nil && *s.UserID != userID {
		return shared.NewDomainError("ALREADY_LINKED", "Shop is already linked to another account")
	}

	s.UserID = &userID
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// ToggleAcceptingOrders flips the accepting-orders flag and returns the new value
func (s *Shop) ToggleAcceptingOrders() bool {
	s.AcceptingOrders = !s.AcceptingOrders
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return s.AcceptingOrders
}

// IsOwnedBy returns true if the shop is linked to the given user
func (s *Shop) IsOwnedBy(userID uuid.UUID) bool {
	return s.UserID != nil && *s.UserID == userID
}

func validateShopName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Shop name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Shop name cannot exceed 100 characters")
	}
	return nil
}
