package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/wishlane/wishlane-backend/api/middleware"
	"github.com/wishlane/wishlane-backend/api/responses"
	"github.com/wishlane/wishlane-backend/api/validators"
	"github.com/wishlane/wishlane-backend/internal/wishes"
	"github.com/wishlane/wishlane-backend/pkg/enums"
	pkgerrors "github.com/wishlane/wishlane-backend/pkg/errors"
	"github.com/wishlane/wishlane-backend/pkg/logger"
)

type createWishRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Priority    *string `json:"priority"`
	Deadline    *string `json:"deadline"`
}

type updateWishRequest struct {
	Title       *string                   `json:"title"`
	Description validators.NullableString `json:"description"`
	Category    *string                   `json:"category"`
	Priority    *string                   `json:"priority"`
	Completed   *bool                     `json:"completed"`
	Deadline    validators.NullableString `json:"deadline"`
}

type deleteWishResponse struct {
	Success bool `json:"success"`
}

func requestUserID(r *http.Request) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user id")
	}
	return id, nil
}

func wishIDParam(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "wishId")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid wish id")
	}
	return id, nil
}

// WishesList returns every wish the caller owns, active first, newest
// first within each group.
func WishesList(svc wishes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wishes service unavailable"))
			return
		}

		userID, err := requestUserID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		list, err := svc.List(ctx, userID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// WishesCreate persists a new wish for the caller.
func WishesCreate(svc wishes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wishes service unavailable"))
			return
		}

		userID, err := requestUserID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var body createWishRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dto := wishes.CreateWishDTO{
			Title:       body.Title,
			Description: body.Description,
		}
		if body.Category != nil {
			category, err := enums.ParseWishCategory(*body.Category)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category"))
				return
			}
			dto.Category = category
		}
		if body.Priority != nil {
			priority, err := enums.ParseWishPriority(*body.Priority)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid priority"))
				return
			}
			dto.Priority = priority
		}
		if body.Deadline != nil {
			deadline, err := validators.ParseDate(*body.Deadline)
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			dto.Deadline = &deadline
		}

		created, err := svc.Create(ctx, userID, dto)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, created)
	}
}

// WishesUpdate applies a partial update to a wish the caller owns.
func WishesUpdate(svc wishes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wishes service unavailable"))
			return
		}

		userID, err := requestUserID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		wishID, err := wishIDParam(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var body updateWishRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dto, err := body.toDTO()
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		updated, err := svc.Update(ctx, userID, wishID, dto)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

// WishesDelete removes a wish the caller owns.
func WishesDelete(svc wishes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wishes service unavailable"))
			return
		}

		userID, err := requestUserID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		wishID, err := wishIDParam(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.Delete(ctx, userID, wishID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, deleteWishResponse{Success: true})
	}
}

func (b updateWishRequest) toDTO() (wishes.UpdateWishDTO, error) {
	dto := wishes.UpdateWishDTO{
		Title:     b.Title,
		Completed: b.Completed,
	}

	if b.Description.Set {
		if b.Description.Null {
			dto.ClearDescription = true
		} else {
			value := b.Description.Value
			dto.Description = &value
		}
	}

	if b.Category != nil {
		category, err := enums.ParseWishCategory(*b.Category)
		if err != nil {
			return wishes.UpdateWishDTO{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category")
		}
		dto.Category = &category
	}
	if b.Priority != nil {
		priority, err := enums.ParseWishPriority(*b.Priority)
		if err != nil {
			return wishes.UpdateWishDTO{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid priority")
		}
		dto.Priority = &priority
	}

	if b.Deadline.Set {
		if b.Deadline.Null {
			dto.ClearDeadline = true
		} else {
			deadline, err := validators.ParseDate(b.Deadline.Value)
			if err != nil {
				return wishes.UpdateWishDTO{}, err
			}
			dto.Deadline = &deadline
		}
	}

	return dto, nil
}
