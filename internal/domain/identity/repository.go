package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines the persistence interface for users
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Save(ctx context.Context, user *User) error
}

// ConfirmTokenRepository defines the persistence interface for email
// confirmation tokens
type ConfirmTokenRepository interface {
	FindByKey(ctx context.Context, key string) (*ConfirmToken, error)
	Save(ctx context.Context, token *ConfirmToken) error
}
