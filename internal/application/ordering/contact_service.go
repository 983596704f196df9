package ordering

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/retailhub/backend/internal/domain/ordering"
	"github.com/retailhub/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// maxContactsPerUser caps how many shipping contacts a buyer may keep
const maxContactsPerUser = 5

// ContactService manages buyer shipping contacts
type ContactService struct {
	contactRepo ordering.ContactRepository
	logger      *zap.Logger
}

// NewContactService creates a new ContactService
func NewContactService(contactRepo ordering.ContactRepository, logger *zap.Logger) *ContactService {
	return &ContactService{
		contactRepo: contactRepo,
		logger:      logger,
	}
}

// List returns all contacts of the user
func (s *ContactService) List(ctx context.Context, userID uuid.UUID) ([]ContactResponse, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}

	contacts, err := s.contactRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]ContactResponse, 0, len(contacts))
	for idx := range contacts {
		responses = append(responses, *toContactResponse(&contacts[idx]))
	}
	return responses, nil
}

// Create adds a new contact for the user
func (s *ContactService) Create(ctx context.Context, userID uuid.UUID, req CreateContactRequest) (*ContactResponse, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}

	existing, err := s.contactRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(existing) >= maxContactsPerUser {
		return nil, shared.NewDomainError("TOO_MANY_CONTACTS", "Contact limit reached")
	}

	contact, err := ordering.NewContact(userID, req.City, req.Street, req.House, req.Apartment, req.Phone)
	if err != nil {
		return nil, err
	}
	if err := s.contactRepo.Save(ctx, contact); err != nil {
		return nil, err
	}

	s.logger.Debug("Contact created",
		zap.String("contact_id", contact.ID.String()),
		zap.String("user_id", userID.String()))

	return toContactResponse(contact), nil
}

// Update edits one of the user's contacts. Contacts of other users are
// reported as not found.
func (s *ContactService) Update(ctx context.Context, userID, contactID uuid.UUID, req UpdateContactRequest) (*ContactResponse, error) {
	contact, err := s.ownedContact(ctx, userID, contactID)
	if err != nil {
		return nil, err
	}

	if err := contact.Update(req.City, req.Street, req.House, req.Apartment, req.Phone); err != nil {
		return nil, err
	}
	if err := s.contactRepo.Save(ctx, contact); err != nil {
		return nil, err
	}

	return toContactResponse(contact), nil
}

// Delete removes one of the user's contacts. Orders that referenced it keep
// existing with the reference cleared.
func (s *ContactService) Delete(ctx context.Context, userID, contactID uuid.UUID) error {
	if _, err := s.ownedContact(ctx, userID, contactID); err != nil {
		return err
	}
	return s.contactRepo.Delete(ctx, contactID)
}

func (s *ContactService) ownedContact(ctx context.Context, userID, contactID uuid.UUID) (*ordering.Contact, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}

	contact, err := s.contactRepo.FindByID(ctx, contactID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, contactNotFound()
		}
		return nil, err
	}
	if !contact.IsOwnedBy(userID) {
		return nil, contactNotFound()
	}
	return contact, nil
}
