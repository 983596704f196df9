package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appidentity "github.com/retailhub/backend/internal/application/identity"
	"github.com/retailhub/backend/internal/domain/identity"
	"github.com/retailhub/backend/internal/domain/shared"
	"github.com/retailhub/backend/internal/infrastructure/auth"
	"github.com/retailhub/backend/internal/infrastructure/config"
	"github.com/retailhub/backend/internal/infrastructure/notification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockConfirmTokenRepository is a mock implementation of identity.ConfirmTokenRepository
type MockConfirmTokenRepository struct {
	mock.Mock
}

func (m *MockConfirmTokenRepository) FindByKey(ctx context.Context, key string) (*identity.ConfirmToken, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.ConfirmToken), args.Error(1)
}

func (m *MockConfirmTokenRepository) Save(ctx context.Context, token *identity.ConfirmToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

type authHandlerFixture struct {
	users  *MockUserRepository
	tokens *MockConfirmTokenRepository
	router *gin.Engine
}

func newAuthHandlerFixture() *authHandlerFixture {
	f := &authHandlerFixture{
		users:  new(MockUserRepository),
		tokens: new(MockConfirmTokenRepository),
	}

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-for-handler-tests",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "retailhub-test",
	})
	svc := appidentity.NewAuthService(
		f.users,
		f.tokens,
		jwtService,
		auth.NewInMemoryTokenBlacklist(),
		notification.NewLogSender(zap.NewNop()),
		zap.NewNop(),
	)
	h := NewAuthHandler(svc)

	userID := uuid.New()
	f.router = gin.New()
	f.router.POST("/auth/register", h.Register)
	f.router.POST("/auth/login", h.Login)
	f.router.POST("/auth/refresh", h.Refresh)
	f.router.GET("/auth/profile", func(c *gin.Context) {
		c.Set("jwt_user_id", userID.String())
	}, h.GetProfile)
	return f
}

func postJSON(t *testing.T, router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestAuthHandlerRegister(t *testing.T) {
	f := newAuthHandlerFixture()

	f.users.On("ExistsByEmail", mock.Anything, "shop@example.com").Return(false, nil)
	f.users.On("Save", mock.Anything, mock.AnythingOfType("*identity.User")).Return(nil)
	f.tokens.On("Save", mock.Anything, mock.AnythingOfType("*identity.ConfirmToken")).Return(nil)

	w := postJSON(t, f.router, "/auth/register", gin.H{
		"email":    "shop@example.com",
		"password": "s3cret-password",
		"type":     "shop",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	f.users.AssertExpectations(t)
}

func TestAuthHandlerRegister_InvalidBody(t *testing.T) {
	f := newAuthHandlerFixture()

	w := postJSON(t, f.router, "/auth/register", gin.H{
		"email":    "not-an-email",
		"password": "short",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	require.Len(t, resp.Error.Details, 2)
	fields := []string{resp.Error.Details[0].Field, resp.Error.Details[1].Field}
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "password")
}

func TestAuthHandlerRegister_EmailTaken(t *testing.T) {
	f := newAuthHandlerFixture()

	f.users.On("ExistsByEmail", mock.Anything, "taken@example.com").Return(true, nil)

	w := postJSON(t, f.router, "/auth/register", gin.H{
		"email":    "taken@example.com",
		"password": "s3cret-password",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "EMAIL_TAKEN", resp.Error.Code)
}

func TestAuthHandlerLogin(t *testing.T) {
	f := newAuthHandlerFixture()

	user, err := identity.NewUser("buyer@example.com", "s3cret-password", identity.UserTypeBuyer)
	require.NoError(t, err)
	require.NoError(t, user.Activate())

	f.users.On("FindByEmail", mock.Anything, "buyer@example.com").Return(user, nil)
	f.users.On("Save", mock.Anything, user).Return(nil)

	w := postJSON(t, f.router, "/auth/login", gin.H{
		"email":    "buyer@example.com",
		"password": "s3cret-password",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "access_token")
	assert.Contains(t, w.Body.String(), "refresh_token")
}

func TestAuthHandlerLogin_WrongPassword(t *testing.T) {
	f := newAuthHandlerFixture()

	user, err := identity.NewUser("buyer@example.com", "s3cret-password", identity.UserTypeBuyer)
	require.NoError(t, err)
	require.NoError(t, user.Activate())

	f.users.On("FindByEmail", mock.Anything, "buyer@example.com").Return(user, nil)

	w := postJSON(t, f.router, "/auth/login", gin.H{
		"email":    "buyer@example.com",
		"password": "wrong-password",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_CREDENTIALS", resp.Error.Code)
}

func TestAuthHandlerRefresh_InvalidToken(t *testing.T) {
	f := newAuthHandlerFixture()

	w := postJSON(t, f.router, "/auth/refresh", gin.H{
		"refresh_token": "garbage",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_TOKEN", resp.Error.Code)
}

func TestAuthHandlerGetProfile_NotFound(t *testing.T) {
	f := newAuthHandlerFixture()

	f.users.On("FindByID", mock.Anything, mock.AnythingOfType("uuid.UUID")).Return(nil, shared.ErrNotFound)

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/profile", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}
