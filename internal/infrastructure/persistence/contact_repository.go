package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/retailhub/backend/internal/domain/ordering"
	"github.com/retailhub/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormContactRepository implements ContactRepository using GORM
type GormContactRepository struct {
	db *gorm.DB
}

// NewGormContactRepository creates a new GormContactRepository
func NewGormContactRepository(db *gorm.DB) *GormContactRepository {
	return &GormContactRepository{db: db}
}

// FindByID finds a contact by its ID
func (r *GormContactRepository) FindByID(ctx context.Context, id uuid.UUID) (*ordering.Contact, error) {
	var contact ordering.Contact
	if err := r.db.WithContext(ctx).First(&contact, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &contact, nil
}

// FindByUser returns the user's contacts, oldest first
func (r *GormContactRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]ordering.Contact, error) {
	var contacts []ordering.Contact
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at").
		Find(&contacts).Error; err != nil {
		return nil, err
	}
	return contacts, nil
}

// Save persists the contact
func (r *GormContactRepository) Save(ctx context.Context, contact *ordering.Contact) error {
	return r.db.WithContext(ctx).Save(contact).Error
}

// Delete removes the contact. Orders referencing it keep existing; the
// foreign key clears their contact reference.
func (r *GormContactRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&ordering.Contact{}, "id = ?", id).Error
}
