package ordering

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/retailhub/backend/internal/domain/shared"
)

// Contact is a buyer-owned shipping/contact record. A buyer may keep several
// contacts and delete them independently; orders referencing a deleted
// contact keep existing with the reference cleared.
type Contact struct {
	shared.BaseAggregateRoot
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	City      string    `gorm:"type:varchar(50);not null"`
	Street    string    `gorm:"type:varchar(100);not null"`
	House     string    `gorm:"type:varchar(15)"`
	Apartment string    `gorm:"type:varchar(15)"`
	Phone     string    `gorm:"type:varchar(20);not null"`
}

// TableName returns the table name for GORM
func (Contact) TableName() string {
	return "contacts"
}

// NewContact creates a new contact for a buyer
func NewContact(userID uuid.UUID, city, street, house, apartment, phone string) (*Contact, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if strings.TrimSpace(city) == "" {
		return nil, shared.NewDomainError("INVALID_CITY", "City cannot be empty")
	}
	if strings.TrimSpace(street) == "" {
		return nil, shared.NewDomainError("INVALID_STREET", "Street cannot be empty")
	}
	if strings.TrimSpace(phone) == "" {
		return nil, shared.NewDomainError("INVALID_PHONE", "Phone cannot be empty")
	}

	return &Contact{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		City:              strings.TrimSpace(city),
		Street:            strings.TrimSpace(street),
		House:             strings.TrimSpace(house),
		Apartment:         strings.TrimSpace(apartment),
		Phone:             strings.TrimSpace(phone),
	}, nil
}

// IsOwnedBy returns true if the contact belongs to the given buyer
func (c *Contact) IsOwnedBy(userID uuid.UUID) bool {
	return c.UserID == userID
}

// Update replaces the contact fields
func (c *Contact) Update(city, street, house, apartment, phone string) error {
	if strings.TrimSpace(city) == "" {
		return shared.NewDomainError("INVALID_CITY", "City cannot be empty")
	}
	if strings.TrimSpace(street) == "" {
		return shared.NewDomainError("INVALID_STREET", "Street cannot be empty")
	}
	if strings.TrimSpace(phone) == "" {
		return shared.NewDomainError("INVALID_PHONE", "Phone cannot be empty")
	}

	c.City = strings.TrimSpace(city)
	c.Street = strings.TrimSpace(street)
	c.House = strings.TrimSpace(house)
	c.Apartment = strings.TrimSpace(apartment)
	c.Phone = strings.TrimSpace(phone)
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}
