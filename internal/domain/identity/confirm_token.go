package identity

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"github.com/retailhub/backend/internal/domain/shared"
)

// confirmTokenBytes is the entropy of a confirmation key (64 hex chars)
const confirmTokenBytes = 32

// ConfirmToken is the email confirmation token issued on registration and
// handed to the notification sender. Redeeming it activates the account.
type ConfirmToken struct {
	shared.BaseEntity
	UserID uuid.UUID  `gorm:"type:uuid;not null;index"`
	Key    string     `gorm:"type:varchar(64);not null;uniqueIndex"`
	UsedAt *time.Time
}

// TableName returns the table name for GORM
func (ConfirmToken) TableName() string {
	return "confirm_tokens"
}

// NewConfirmToken creates a token with a fresh random key
func NewConfirmToken(userID uuid.UUID) (*ConfirmToken, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}

	buf := make([]byte, confirmTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return nil, shared.NewDomainError("TOKEN_GENERATION_ERROR", "Failed to generate confirmation token")
	}

	return &ConfirmToken{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		Key:        hex.EncodeToString(buf),
	}, nil
}

// Redeem marks the token as used; a token can be redeemed only once
func (t *ConfirmToken) Redeem() error {
	if t.UsedAt != nil {
		return shared.NewDomainError("TOKEN_USED", "Confirmation token has already been used")
	}

	now := time.Now()
	t.UsedAt = &now
	t.UpdatedAt = now

	return nil
}
