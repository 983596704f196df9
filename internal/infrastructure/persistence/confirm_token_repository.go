package persistence

import (
	"context"
	"errors"

	"github.com/retailhub/backend/internal/domain/identity"
	"github.com/retailhub/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormConfirmTokenRepository implements ConfirmTokenRepository using GORM
type GormConfirmTokenRepository struct {
	db *gorm.DB
}

// NewGormConfirmTokenRepository creates a new GormConfirmTokenRepository
func NewGormConfirmTokenRepository(db *gorm.DB) *GormConfirmTokenRepository {
	return &GormConfirmTokenRepository{db: db}
}

// FindByKey finds a confirmation token by its key
func (r *GormConfirmTokenRepository) FindByKey(ctx context.Context, key string) (*identity.ConfirmToken, error) {
	var token identity.ConfirmToken
	if err := r.db.WithContext(ctx).First(&token, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &token, nil
}

// Save persists the token
func (r *GormConfirmTokenRepository) Save(ctx context.Context, token *identity.ConfirmToken) error {
	return r.db.WithContext(ctx).Save(token).Error
}
