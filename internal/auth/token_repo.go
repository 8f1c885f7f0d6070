package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wishlane/wishlane-backend/pkg/db/models"
)

// TokenRepository persists magic-link login tokens. Only token hashes are
// stored; the raw token leaves the process once, inside the email.
type TokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository constructs a login token repo bound to the provided GORM DB.
func NewTokenRepository(db *gorm.DB) *TokenRepository {
	return &TokenRepository{db: db}
}

// Create inserts a login token row.
func (r *TokenRepository) Create(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) (*models.LoginToken, error) {
	token := &models.LoginToken{
		ID:        uuid.New(),
		UserID:    userID,
		TokenHash: tokenHash,
		ExpiresAt: expiresAt,
	}
	if err := r.db.WithContext(ctx).Create(token).Error; err != nil {
		return nil, err
	}
	return token, nil
}

// FindByHash loads a login token row by its hash.
func (r *TokenRepository) FindByHash(ctx context.Context, tokenHash string) (*models.LoginToken, error) {
	var token models.LoginToken
	if err := r.db.WithContext(ctx).First(&token, "token_hash = ?", tokenHash).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

// Consume marks the token used. It only succeeds once: the guarded update
// reports zero rows when another request already consumed it.
func (r *TokenRepository) Consume(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.LoginToken{}).
		Where("id = ? AND consumed_at IS NULL", id).
		UpdateColumn("consumed_at", at)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// DeleteExpired removes tokens past their expiry, consumed or not, and
// returns how many rows were swept.
func (r *TokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at < ?", now).
		Delete(&models.LoginToken{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
