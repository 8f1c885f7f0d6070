package models

import (
	"time"

	"github.com/google/uuid"
)

// LoginToken backs the emailed magic-link flow. Only the SHA-256 of the raw
// token is stored; a token is single-use and expires after a short TTL.
type LoginToken struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID     uuid.UUID  `gorm:"column:user_id;type:uuid;not null;index:login_tokens_user_id_idx"`
	TokenHash  string     `gorm:"column:token_hash;type:text;not null;uniqueIndex"`
	ExpiresAt  time.Time  `gorm:"column:expires_at;not null"`
	ConsumedAt *time.Time `gorm:"column:consumed_at"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime"`
}
