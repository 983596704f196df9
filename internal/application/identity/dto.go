package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailhub/backend/internal/domain/identity"
)

// RegisterRequest represents a request to create an account
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Type     string `json:"type" binding:"omitempty,oneof=buyer shop"`
	Company  string `json:"company" binding:"max=80"`
	Position string `json:"position" binding:"max=60"`
}

// RegisterResult represents the outcome of a registration
type RegisterResult struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	Status string    `json:"status"`
}

// ConfirmRequest represents an email confirmation attempt
type ConfirmRequest struct {
	Key string `json:"key" binding:"required"`
}

// LoginRequest represents a login attempt
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest represents a token refresh attempt
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UserInfo represents account details in API responses
type UserInfo struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Type     string    `json:"type"`
	Status   string    `json:"status"`
	Company  string    `json:"company,omitempty"`
	Position string    `json:"position,omitempty"`
}

// LoginResult represents a successful login
type LoginResult struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
	User                  UserInfo  `json:"user"`
}

// LogoutInput carries the token identity being revoked
type LogoutInput struct {
	UserID   uuid.UUID
	TokenJTI string
	TokenTTL time.Duration
}

// UpdateProfileRequest represents a request to change account details
type UpdateProfileRequest struct {
	Company  string `json:"company" binding:"max=80"`
	Position string `json:"position" binding:"max=60"`
}

func toUserInfo(user *identity.User) UserInfo {
	return UserInfo{
		ID:       user.ID,
		Email:    user.Email,
		Type:     string(user.Type),
		Status:   string(user.Status),
		Company:  user.Company,
		Position: user.Position,
	}
}
