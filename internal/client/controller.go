// Package client holds the list controller behind the terminal client. It
// keeps a local snapshot of the signed-in user's wishes plus a single form,
// and always refetches the full list after a successful mutation instead of
// merging server responses locally.
package client

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/wishlane/wishlane-backend/pkg/apiclient"
	pkgerrors "github.com/wishlane/wishlane-backend/pkg/errors"
	"github.com/wishlane/wishlane-backend/pkg/logger"
)

// State is the controller's fetch state.
type State int

const (
	StateIdle State = iota
	StateLoading
)

// API is the slice of the HTTP client the controller needs.
type API interface {
	ListWishes(ctx context.Context) ([]apiclient.Wish, error)
	CreateWish(ctx context.Context, draft apiclient.WishDraft) (*apiclient.Wish, error)
	UpdateWish(ctx context.Context, id uuid.UUID, patch *apiclient.WishPatch) (*apiclient.Wish, error)
	DeleteWish(ctx context.Context, id uuid.UUID) error
}

// ConfirmFunc asks the user to approve a destructive action.
type ConfirmFunc func(wish apiclient.Wish) bool

// Params wires the controller.
type Params struct {
	API    API
	Logger *logger.Logger
}

// Controller owns the local wish snapshot and the form state machine.
// Safe for concurrent use, though the CLI drives it from one goroutine.
type Controller struct {
	api API
	log *logger.Logger

	mu     sync.Mutex
	state  State
	wishes []apiclient.Wish
	form   Form
}

// NewController builds a controller with an empty snapshot and a closed form.
func NewController(params Params) (*Controller, error) {
	if params.API == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "api client is required")
	}
	return &Controller{
		api:    params.API,
		log:    params.Logger,
		wishes: []apiclient.Wish{},
	}, nil
}

// State returns the current fetch state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Wishes returns a copy of the local snapshot in server order.
func (c *Controller) Wishes() []apiclient.Wish {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]apiclient.Wish, len(c.wishes))
	copy(out, c.wishes)
	return out
}

// Form returns the current form state.
func (c *Controller) Form() Form {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form
}

// Refresh replaces the snapshot with the server's list. On failure the
// previous snapshot stays in place.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	c.state = StateLoading
	c.mu.Unlock()

	wishes, err := c.api.ListWishes(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = StateIdle
	if err != nil {
		c.logError(ctx, err, "refresh wishes")
		return err
	}
	c.wishes = wishes
	return nil
}

// ToggleComplete flips a wish's completed flag with a one-field patch and
// refetches the list.
func (c *Controller) ToggleComplete(ctx context.Context, id uuid.UUID) error {
	wish, ok := c.find(id)
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "wish not in local list")
	}

	patch := apiclient.NewWishPatch().SetCompleted(!wish.Completed)
	if _, err := c.api.UpdateWish(ctx, id, patch); err != nil {
		c.logError(ctx, err, "toggle wish")
		return err
	}
	return c.Refresh(ctx)
}

// Delete asks for confirmation, removes the wish, and refetches. A declined
// confirmation is not an error.
func (c *Controller) Delete(ctx context.Context, id uuid.UUID, confirm ConfirmFunc) error {
	wish, ok := c.find(id)
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "wish not in local list")
	}
	if confirm != nil && !confirm(wish) {
		return nil
	}

	if err := c.api.DeleteWish(ctx, id); err != nil {
		c.logError(ctx, err, "delete wish")
		return err
	}
	return c.Refresh(ctx)
}

func (c *Controller) find(id uuid.UUID) (apiclient.Wish, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, wish := range c.wishes {
		if wish.ID == id {
			return wish, true
		}
	}
	return apiclient.Wish{}, false
}

func (c *Controller) logError(ctx context.Context, err error, action string) {
	if c.log == nil {
		return
	}
	ctx = c.log.WithFields(ctx, map[string]any{"action": action})
	c.log.Error(ctx, "wishlist request failed", err)
}
