package wishes

import (
	"time"

	"github.com/google/uuid"

	"github.com/wishlane/wishlane-backend/pkg/db/models"
	"github.com/wishlane/wishlane-backend/pkg/enums"
)

// DeadlineLayout is the wire format for deadlines.
const DeadlineLayout = "2006-01-02"

// WishDTO is the transport shape of a wish record.
type WishDTO struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"userId"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Category    string    `json:"category"`
	Priority    string    `json:"priority"`
	Completed   bool      `json:"completed"`
	Deadline    *string   `json:"deadline"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateWishDTO carries validated input for a new wish. Category and
// Priority default when left empty.
type CreateWishDTO struct {
	Title       string
	Description *string
	Category    enums.WishCategory
	Priority    enums.WishPriority
	Deadline    *time.Time
}

// UpdateWishDTO is a partial update. Each nil pointer means "leave the
// column as it is"; ClearDescription and ClearDeadline null the column
// out explicitly.
type UpdateWishDTO struct {
	Title            *string
	Description      *string
	ClearDescription bool
	Category         *enums.WishCategory
	Priority         *enums.WishPriority
	Completed        *bool
	Deadline         *time.Time
	ClearDeadline    bool
}

// IsEmpty reports whether the update changes nothing.
func (u UpdateWishDTO) IsEmpty() bool {
	return u.Title == nil &&
		u.Description == nil && !u.ClearDescription &&
		u.Category == nil &&
		u.Priority == nil &&
		u.Completed == nil &&
		u.Deadline == nil && !u.ClearDeadline
}

func FromModel(w *models.Wish) *WishDTO {
	if w == nil {
		return nil
	}

	var deadline *string
	if w.Deadline != nil {
		v := w.Deadline.UTC().Format(DeadlineLayout)
		deadline = &v
	}

	return &WishDTO{
		ID:          w.ID,
		UserID:      w.UserID,
		Title:       w.Title,
		Description: w.Description,
		Category:    w.Category.String(),
		Priority:    w.Priority.String(),
		Completed:   w.Completed,
		Deadline:    deadline,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
}

// FromModels maps a slice of records, always returning a non-nil slice
// so an empty list serializes as [] rather than null.
func FromModels(ws []models.Wish) []WishDTO {
	out := make([]WishDTO, 0, len(ws))
	for i := range ws {
		out = append(out, *FromModel(&ws[i]))
	}
	return out
}

func (c CreateWishDTO) ToModel(userID uuid.UUID) *models.Wish {
	category := c.Category
	if category == "" {
		category = enums.DefaultWishCategory
	}
	priority := c.Priority
	if priority == "" {
		priority = enums.DefaultWishPriority
	}

	return &models.Wish{
		UserID:      userID,
		Title:       c.Title,
		Description: c.Description,
		Category:    category,
		Priority:    priority,
		Deadline:    c.Deadline,
	}
}
