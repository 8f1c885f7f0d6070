package wishes

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wishlane/wishlane-backend/pkg/db/models"
)

// Repository encapsulates wish persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a wishes repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new wish and returns the persisted model.
func (r *Repository) Create(ctx context.Context, userID uuid.UUID, dto CreateWishDTO) (*models.Wish, error) {
	wish := dto.ToModel(userID)
	if wish.ID == uuid.Nil {
		wish.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(wish).Error; err != nil {
		return nil, err
	}
	return wish, nil
}

// ListByUser returns every wish owned by the user, active items first,
// newest first within each group.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Wish, error) {
	var records []models.Wish
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("completed ASC").
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// FindByID loads a single wish regardless of owner. Ownership is the
// service's concern.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Wish, error) {
	var wish models.Wish
	if err := r.db.WithContext(ctx).First(&wish, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &wish, nil
}

// Update applies the non-nil fields of the patch and returns the
// reloaded record.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, dto UpdateWishDTO) (*models.Wish, error) {
	updates := map[string]any{}
	if dto.Title != nil {
		updates["title"] = *dto.Title
	}
	if dto.ClearDescription {
		updates["description"] = nil
	} else if dto.Description != nil {
		updates["description"] = *dto.Description
	}
	if dto.Category != nil {
		updates["category"] = *dto.Category
	}
	if dto.Priority != nil {
		updates["priority"] = *dto.Priority
	}
	if dto.Completed != nil {
		updates["completed"] = *dto.Completed
	}
	if dto.ClearDeadline {
		updates["deadline"] = nil
	} else if dto.Deadline != nil {
		updates["deadline"] = *dto.Deadline
	}

	if len(updates) > 0 {
		if err := r.db.WithContext(ctx).
			Model(&models.Wish{}).
			Where("id = ?", id).
			Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	return r.FindByID(ctx, id)
}

// Delete removes the wish row. Deleting a missing row is not an error
// at this layer; the service checks existence first.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Wish{}).Error
}

// CountByUser reports how many wishes the user owns.
func (r *Repository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Wish{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
