package ordering

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/retailhub/backend/internal/domain/ordering"
	"github.com/retailhub/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newContactService(repo *MockContactRepository) *ContactService {
	return NewContactService(repo, zap.NewNop())
}

func TestContactService_Create(t *testing.T) {
	repo := new(MockContactRepository)
	svc := newContactService(repo)
	userID := uuid.New()

	repo.On("FindByUser", mock.Anything, userID).Return([]ordering.Contact{}, nil)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*ordering.Contact")).Return(nil)

	resp, err := svc.Create(context.Background(), userID, CreateContactRequest{
		City:   "Moscow",
		Street: "Tverskaya",
		House:  "1",
		Phone:  "+79990000000",
	})
	require.NoError(t, err)

	assert.Equal(t, "Moscow", resp.City)
	assert.Equal(t, "Tverskaya", resp.Street)
	repo.AssertExpectations(t)
}

func TestContactService_Create_LimitReached(t *testing.T) {
	repo := new(MockContactRepository)
	svc := newContactService(repo)
	userID := uuid.New()

	existing := make([]ordering.Contact, maxContactsPerUser)
	for i := range existing {
		existing[i] = *newContact(t, userID)
	}
	repo.On("FindByUser", mock.Anything, userID).Return(existing, nil)

	_, err := svc.Create(context.Background(), userID, CreateContactRequest{
		City:   "Moscow",
		Street: "Tverskaya",
		Phone:  "+79990000000",
	})
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "TOO_MANY_CONTACTS", domainErr.Code)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestContactService_Create_Invalid(t *testing.T) {
	repo := new(MockContactRepository)
	svc := newContactService(repo)
	userID := uuid.New()

	repo.On("FindByUser", mock.Anything, userID).Return([]ordering.Contact{}, nil)

	_, err := svc.Create(context.Background(), userID, CreateContactRequest{
		Street: "Tverskaya",
		Phone:  "+79990000000",
	})
	require.Error(t, err)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestContactService_List(t *testing.T) {
	repo := new(MockContactRepository)
	svc := newContactService(repo)
	userID := uuid.New()

	contact := newContact(t, userID)
	repo.On("FindByUser", mock.Anything, userID).Return([]ordering.Contact{*contact}, nil)

	responses, err := svc.List(context.Background(), userID)
	require.NoError(t, err)

	require.Len(t, responses, 1)
	assert.Equal(t, contact.ID, responses[0].ID)
	assert.Equal(t, "Moscow", responses[0].City)
}

func TestContactService_Update(t *testing.T) {
	repo := new(MockContactRepository)
	svc := newContactService(repo)
	userID := uuid.New()

	contact := newContact(t, userID)
	repo.On("FindByID", mock.Anything, contact.ID).Return(contact, nil)
	repo.On("Save", mock.Anything, contact).Return(nil)

	resp, err := svc.Update(context.Background(), userID, contact.ID, UpdateContactRequest{
		City:   "Kazan",
		Street: "Bauman",
		Phone:  "+79991111111",
	})
	require.NoError(t, err)

	assert.Equal(t, "Kazan", resp.City)
	assert.Equal(t, "Bauman", resp.Street)
	repo.AssertExpectations(t)
}

func TestContactService_Update_ForeignContact(t *testing.T) {
	repo := new(MockContactRepository)
	svc := newContactService(repo)

	contact := newContact(t, uuid.New())
	repo.On("FindByID", mock.Anything, contact.ID).Return(contact, nil)

	_, err := svc.Update(context.Background(), uuid.New(), contact.ID, UpdateContactRequest{
		City:   "Kazan",
		Street: "Bauman",
		Phone:  "+79991111111",
	})
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "CONTACT_NOT_FOUND", domainErr.Code)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestContactService_Delete(t *testing.T) {
	repo := new(MockContactRepository)
	svc := newContactService(repo)
	userID := uuid.New()

	contact := newContact(t, userID)
	repo.On("FindByID", mock.Anything, contact.ID).Return(contact, nil)
	repo.On("Delete", mock.Anything, contact.ID).Return(nil)

	require.NoError(t, svc.Delete(context.Background(), userID, contact.ID))
	repo.AssertExpectations(t)
}

func TestContactService_Delete_ForeignContact(t *testing.T) {
	repo := new(MockContactRepository)
	svc := newContactService(repo)

	contact := newContact(t, uuid.New())
	repo.On("FindByID", mock.Anything, contact.ID).Return(contact, nil)

	err := svc.Delete(context.Background(), uuid.New(), contact.ID)
	require.Error(t, err)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
