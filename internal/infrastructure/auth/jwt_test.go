package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/retailhub/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-for-unit-tests-only",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "retailhub-test",
	})
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc := newTestJWTService()
	userID := uuid.New()

	pair, err := svc.GenerateTokenPair(GenerateTokenInput{
		UserID:   userID,
		Email:    "buyer@example.com",
		UserType: "buyer",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)
	assert.Equal(t, "Bearer", pair.TokenType)

	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "buyer@example.com", claims.Email)
	assert.Equal(t, "buyer", claims.UserType)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
	assert.NotEmpty(t, claims.ID)

	parsed, err := claims.GetUserUUID()
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)
	assert.Greater(t, claims.GetRemainingTTL(), time.Duration(0))
}

func TestJWTService_RejectsWrongTokenType(t *testing.T) {
	svc := newTestJWTService()

	pair, err := svc.GenerateTokenPair(GenerateTokenInput{
		UserID:   uuid.New(),
		Email:    "buyer@example.com",
		UserType: "buyer",
	})
	require.NoError(t, err)

	// refresh presented as access and vice versa
	_, err = svc.ValidateAccessToken(pair.RefreshToken)
	assert.Error(t, err)

	_, err = svc.ValidateRefreshToken(pair.AccessToken)
	assert.Error(t, err)
}

func TestJWTService_RejectsGarbage(t *testing.T) {
	svc := newTestJWTService()

	_, err := svc.ValidateAccessToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ValidateAccessToken("")
	assert.Error(t, err)
}

func TestJWTService_RejectsExpired(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-for-unit-tests-only",
		AccessTokenExpiration:  -time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "retailhub-test",
	})

	pair, err := svc.GenerateTokenPair(GenerateTokenInput{
		UserID:   uuid.New(),
		Email:    "buyer@example.com",
		UserType: "buyer",
	})
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTService_RejectsForeignSignature(t *testing.T) {
	svc := newTestJWTService()
	other := NewJWTService(config.JWTConfig{
		Secret:                 "a-completely-different-signing-key",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "retailhub-test",
	})

	pair, err := other.GenerateTokenPair(GenerateTokenInput{
		UserID:   uuid.New(),
		Email:    "buyer@example.com",
		UserType: "buyer",
	})
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
