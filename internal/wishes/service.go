package wishes

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wishlane/wishlane-backend/pkg/db/models"
	pkgerrors "github.com/wishlane/wishlane-backend/pkg/errors"
)

// MaxTitleLength bounds wish titles on create and update.
const MaxTitleLength = 200

// ServiceParams groups dependencies for the wishes service.
type ServiceParams struct {
	WishRepo *Repository
}

// Service exposes business rules for wish management. Every operation is
// scoped to the calling user; a wish owned by someone else behaves
// exactly like a wish that does not exist.
type Service interface {
	List(ctx context.Context, userID uuid.UUID) ([]WishDTO, error)
	Create(ctx context.Context, userID uuid.UUID, dto CreateWishDTO) (*WishDTO, error)
	Update(ctx context.Context, userID, wishID uuid.UUID, dto UpdateWishDTO) (*WishDTO, error)
	Delete(ctx context.Context, userID, wishID uuid.UUID) error
}

type service struct {
	wishRepo *Repository
}

// NewService builds a wishes service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.WishRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wish repo is required")
	}
	return &service{wishRepo: params.WishRepo}, nil
}

// List returns all wishes owned by the user, active first, newest first.
func (s *service) List(ctx context.Context, userID uuid.UUID) ([]WishDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	records, err := s.wishRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list wishes")
	}
	return FromModels(records), nil
}

// Create validates and persists a new wish for the user.
func (s *service) Create(ctx context.Context, userID uuid.UUID, dto CreateWishDTO) (*WishDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	title, err := normalizeTitle(dto.Title)
	if err != nil {
		return nil, err
	}
	dto.Title = title

	if dto.Category != "" && !dto.Category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid category")
	}
	if dto.Priority != "" && !dto.Priority.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid priority")
	}

	wish, err := s.wishRepo.Create(ctx, userID, dto)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create wish")
	}
	return FromModel(wish), nil
}

// Update applies a partial update to a wish the user owns.
func (s *service) Update(ctx context.Context, userID, wishID uuid.UUID, dto UpdateWishDTO) (*WishDTO, error) {
	if _, err := s.loadOwned(ctx, userID, wishID); err != nil {
		return nil, err
	}

	if dto.Title != nil {
		title, err := normalizeTitle(*dto.Title)
		if err != nil {
			return nil, err
		}
		dto.Title = &title
	}
	if dto.Category != nil && !dto.Category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid category")
	}
	if dto.Priority != nil && !dto.Priority.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid priority")
	}

	updated, err := s.wishRepo.Update(ctx, wishID, dto)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update wish")
	}
	return FromModel(updated), nil
}

// Delete removes a wish the user owns.
func (s *service) Delete(ctx context.Context, userID, wishID uuid.UUID) error {
	if _, err := s.loadOwned(ctx, userID, wishID); err != nil {
		return err
	}
	if err := s.wishRepo.Delete(ctx, wishID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete wish")
	}
	return nil
}

// loadOwned fetches the wish and verifies ownership. A missing record
// and a foreign record produce the same not-found error so record IDs
// cannot be probed across accounts.
func (s *service) loadOwned(ctx context.Context, userID, wishID uuid.UUID) (*models.Wish, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if wishID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wish id is required")
	}

	wish, err := s.wishRepo.FindByID(ctx, wishID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "wish not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load wish")
	}
	if wish.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "wish not found")
	}
	return wish, nil
}

func normalizeTitle(title string) (string, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	if len(trimmed) > MaxTitleLength {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "title is too long")
	}
	return trimmed, nil
}
