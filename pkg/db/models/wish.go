package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/wishlane/wishlane-backend/pkg/enums"
)

// Wish is a single user-owned goal record. ID, UserID and CreatedAt never
// change after creation.
type Wish struct {
	ID          uuid.UUID          `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID      uuid.UUID          `gorm:"column:user_id;type:uuid;not null;index:wishes_user_id_idx"`
	Title       string             `gorm:"type:text;not null"`
	Description *string            `gorm:"type:text"`
	Category    enums.WishCategory `gorm:"type:text;not null;default:OTHER"`
	Priority    enums.WishPriority `gorm:"type:text;not null;default:MEDIUM"`
	Completed   bool               `gorm:"not null;default:false"`
	Deadline    *time.Time         `gorm:"column:deadline"`
	CreatedAt   time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
