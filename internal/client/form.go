package client

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/wishlane/wishlane-backend/pkg/apiclient"
	pkgerrors "github.com/wishlane/wishlane-backend/pkg/errors"
)

// FormMode tells whether the form is closed, creating, or editing.
type FormMode int

const (
	FormClosed FormMode = iota
	FormCreate
	FormEdit
)

// Form holds the fields the user is editing. All values are plain text;
// empty optional fields submit as absent (create) or null (edit).
type Form struct {
	Mode        FormMode
	WishID      uuid.UUID
	Title       string
	Description string
	Category    string
	Priority    string
	Deadline    string
}

// Open reports whether a form is in progress.
func (f Form) Open() bool {
	return f.Mode != FormClosed
}

// OpenCreate opens an empty creation form. Only one form may be open.
func (c *Controller) OpenCreate() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.form.Open() {
		return pkgerrors.New(pkgerrors.CodeConflict, "a form is already open")
	}
	c.form = Form{Mode: FormCreate}
	return nil
}

// OpenEdit opens an edit form pre-populated from the local snapshot.
func (c *Controller) OpenEdit(id uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.form.Open() {
		return pkgerrors.New(pkgerrors.CodeConflict, "a form is already open")
	}

	for _, wish := range c.wishes {
		if wish.ID != id {
			continue
		}
		form := Form{
			Mode:     FormEdit,
			WishID:   wish.ID,
			Title:    wish.Title,
			Category: wish.Category,
			Priority: wish.Priority,
		}
		if wish.Description != nil {
			form.Description = *wish.Description
		}
		if wish.Deadline != nil {
			form.Deadline = *wish.Deadline
		}
		c.form = form
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeNotFound, "wish not in local list")
}

// SetField updates a form value in place. No-op when the form is closed.
func (c *Controller) SetField(apply func(*Form)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.form.Open() || apply == nil {
		return
	}
	apply(&c.form)
}

// Cancel discards the open form.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form = Form{}
}

// Submit sends the open form as a create or update. On success the form
// closes and the list is refetched; on failure the form stays open untouched.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	form := c.form
	c.mu.Unlock()

	var err error
	switch form.Mode {
	case FormCreate:
		_, err = c.api.CreateWish(ctx, form.draft())
	case FormEdit:
		_, err = c.api.UpdateWish(ctx, form.WishID, form.patch())
	default:
		return pkgerrors.New(pkgerrors.CodeValidation, "no form is open")
	}
	if err != nil {
		c.logError(ctx, err, "submit wish form")
		return err
	}

	c.mu.Lock()
	c.form = Form{}
	c.mu.Unlock()
	return c.Refresh(ctx)
}

func (f Form) draft() apiclient.WishDraft {
	draft := apiclient.WishDraft{Title: strings.TrimSpace(f.Title)}
	if v := strings.TrimSpace(f.Description); v != "" {
		draft.Description = &v
	}
	if v := strings.TrimSpace(f.Category); v != "" {
		draft.Category = &v
	}
	if v := strings.TrimSpace(f.Priority); v != "" {
		draft.Priority = &v
	}
	if v := strings.TrimSpace(f.Deadline); v != "" {
		draft.Deadline = &v
	}
	return draft
}

func (f Form) patch() *apiclient.WishPatch {
	patch := apiclient.NewWishPatch().SetTitle(strings.TrimSpace(f.Title))
	if v := strings.TrimSpace(f.Description); v != "" {
		patch.SetDescription(&v)
	} else {
		patch.SetDescription(nil)
	}
	if v := strings.TrimSpace(f.Category); v != "" {
		patch.SetCategory(v)
	}
	if v := strings.TrimSpace(f.Priority); v != "" {
		patch.SetPriority(v)
	}
	if v := strings.TrimSpace(f.Deadline); v != "" {
		patch.SetDeadline(&v)
	} else {
		patch.SetDeadline(nil)
	}
	return patch
}
