package client

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/wishlane/wishlane-backend/pkg/apiclient"
	pkgerrors "github.com/wishlane/wishlane-backend/pkg/errors"
)

type fakeAPI struct {
	wishes []apiclient.Wish

	listErr   error
	createErr error
	updateErr error
	deleteErr error

	createdDrafts  []apiclient.WishDraft
	updatedIDs     []uuid.UUID
	updatedPatches []*apiclient.WishPatch
	deletedIDs     []uuid.UUID
	listCalls      int
}

func (f *fakeAPI) ListWishes(context.Context) ([]apiclient.Wish, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]apiclient.Wish, len(f.wishes))
	copy(out, f.wishes)
	return out, nil
}

func (f *fakeAPI) CreateWish(_ context.Context, draft apiclient.WishDraft) (*apiclient.Wish, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.createdDrafts = append(f.createdDrafts, draft)
	wish := apiclient.Wish{ID: uuid.New(), Title: draft.Title, Category: "OTHER", Priority: "MEDIUM"}
	f.wishes = append(f.wishes, wish)
	return &wish, nil
}

func (f *fakeAPI) UpdateWish(_ context.Context, id uuid.UUID, patch *apiclient.WishPatch) (*apiclient.Wish, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	f.updatedIDs = append(f.updatedIDs, id)
	f.updatedPatches = append(f.updatedPatches, patch)
	for i := range f.wishes {
		if f.wishes[i].ID == id {
			return &f.wishes[i], nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "wish not found")
}

func (f *fakeAPI) DeleteWish(_ context.Context, id uuid.UUID) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedIDs = append(f.deletedIDs, id)
	for i := range f.wishes {
		if f.wishes[i].ID == id {
			f.wishes = append(f.wishes[:i], f.wishes[i+1:]...)
			break
		}
	}
	return nil
}

func strptr(s string) *string { return &s }

func seedWish(title string, completed bool) apiclient.Wish {
	return apiclient.Wish{
		ID:        uuid.New(),
		Title:     title,
		Category:  "TRAVEL",
		Priority:  "HIGH",
		Completed: completed,
	}
}

func newTestController(t *testing.T, api *fakeAPI) *Controller {
	t.Helper()
	ctrl, err := NewController(Params{API: api})
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	return ctrl
}

func TestRefreshReplacesSnapshot(t *testing.T) {
	api := &fakeAPI{wishes: []apiclient.Wish{seedWish("Climb Mt. Fuji", false)}}
	ctrl := newTestController(t, api)

	if got := len(ctrl.Wishes()); got != 0 {
		t.Fatalf("expected empty snapshot before refresh, got %d", got)
	}
	if err := ctrl.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if ctrl.State() != StateIdle {
		t.Fatalf("expected idle state after refresh")
	}
	wishes := ctrl.Wishes()
	if len(wishes) != 1 || wishes[0].Title != "Climb Mt. Fuji" {
		t.Fatalf("unexpected snapshot %+v", wishes)
	}
}

func TestFailedRefreshKeepsPreviousList(t *testing.T) {
	api := &fakeAPI{wishes: []apiclient.Wish{seedWish("Learn Go", false)}}
	ctrl := newTestController(t, api)

	if err := ctrl.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	api.listErr = pkgerrors.New(pkgerrors.CodeDependency, "server unreachable")
	if err := ctrl.Refresh(context.Background()); err == nil {
		t.Fatal("expected refresh error")
	}
	if ctrl.State() != StateIdle {
		t.Fatal("expected idle state after failed refresh")
	}
	wishes := ctrl.Wishes()
	if len(wishes) != 1 || wishes[0].Title != "Learn Go" {
		t.Fatalf("previous snapshot lost: %+v", wishes)
	}
}

func TestOnlyOneFormAtATime(t *testing.T) {
	ctrl := newTestController(t, &fakeAPI{})

	if err := ctrl.OpenCreate(); err != nil {
		t.Fatalf("open create: %v", err)
	}
	if err := ctrl.OpenCreate(); err == nil {
		t.Fatal("expected second open to fail")
	}
	if err := ctrl.OpenEdit(uuid.New()); err == nil {
		t.Fatal("expected edit open to fail with form already open")
	}

	ctrl.Cancel()
	if ctrl.Form().Open() {
		t.Fatal("expected form closed after cancel")
	}
}

func TestOpenEditPrePopulatesFields(t *testing.T) {
	wish := seedWish("Visit Kyoto", false)
	wish.Description = strptr("two weeks in autumn")
	wish.Deadline = strptr("2026-11-01")
	api := &fakeAPI{wishes: []apiclient.Wish{wish}}
	ctrl := newTestController(t, api)

	if err := ctrl.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if err := ctrl.OpenEdit(wish.ID); err != nil {
		t.Fatalf("open edit: %v", err)
	}

	form := ctrl.Form()
	if form.Mode != FormEdit || form.WishID != wish.ID {
		t.Fatalf("unexpected form %+v", form)
	}
	if form.Title != "Visit Kyoto" || form.Description != "two weeks in autumn" ||
		form.Category != "TRAVEL" || form.Priority != "HIGH" || form.Deadline != "2026-11-01" {
		t.Fatalf("form not pre-populated: %+v", form)
	}
}

func TestSubmitCreateRefetches(t *testing.T) {
	api := &fakeAPI{}
	ctrl := newTestController(t, api)

	if err := ctrl.OpenCreate(); err != nil {
		t.Fatalf("open create: %v", err)
	}
	ctrl.SetField(func(f *Form) {
		f.Title = "Run a marathon"
		f.Category = "HEALTH"
	})

	listCallsBefore := api.listCalls
	if err := ctrl.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if ctrl.Form().Open() {
		t.Fatal("expected form closed after submit")
	}
	if api.listCalls != listCallsBefore+1 {
		t.Fatal("expected a full refetch after create")
	}
	if len(api.createdDrafts) != 1 {
		t.Fatalf("expected one create call, got %d", len(api.createdDrafts))
	}
	draft := api.createdDrafts[0]
	if draft.Title != "Run a marathon" || draft.Category == nil || *draft.Category != "HEALTH" {
		t.Fatalf("unexpected draft %+v", draft)
	}
	if draft.Description != nil || draft.Deadline != nil || draft.Priority != nil {
		t.Fatalf("empty optional fields should be absent: %+v", draft)
	}

	wishes := ctrl.Wishes()
	if len(wishes) != 1 || wishes[0].Title != "Run a marathon" {
		t.Fatalf("snapshot not refetched: %+v", wishes)
	}
}

func TestSubmitEditSendsPatchAndRefetches(t *testing.T) {
	wish := seedWish("Visit Kyoto", false)
	wish.Description = strptr("old notes")
	api := &fakeAPI{wishes: []apiclient.Wish{wish}}
	ctrl := newTestController(t, api)

	if err := ctrl.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if err := ctrl.OpenEdit(wish.ID); err != nil {
		t.Fatalf("open edit: %v", err)
	}
	ctrl.SetField(func(f *Form) {
		f.Title = "Visit Kyoto and Nara"
		f.Description = ""
	})

	if err := ctrl.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if len(api.updatedIDs) != 1 || api.updatedIDs[0] != wish.ID {
		t.Fatalf("unexpected update targets %+v", api.updatedIDs)
	}
	if api.updatedPatches[0].IsEmpty() {
		t.Fatal("expected a populated patch")
	}
	if ctrl.Form().Open() {
		t.Fatal("expected form closed after submit")
	}
}

func TestFailedSubmitKeepsFormOpen(t *testing.T) {
	api := &fakeAPI{createErr: pkgerrors.New(pkgerrors.CodeValidation, "title is required")}
	ctrl := newTestController(t, api)

	if err := ctrl.OpenCreate(); err != nil {
		t.Fatalf("open create: %v", err)
	}
	ctrl.SetField(func(f *Form) { f.Title = "   " })

	if err := ctrl.Submit(context.Background()); err == nil {
		t.Fatal("expected submit error")
	}
	form := ctrl.Form()
	if !form.Open() || form.Mode != FormCreate {
		t.Fatalf("form should stay open after failed submit: %+v", form)
	}
	if api.listCalls != 0 {
		t.Fatal("no refetch expected after failed submit")
	}
}

func TestToggleCompleteRefetches(t *testing.T) {
	wish := seedWish("Learn watercolor", false)
	api := &fakeAPI{wishes: []apiclient.Wish{wish}}
	ctrl := newTestController(t, api)

	if err := ctrl.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	listCallsBefore := api.listCalls

	if err := ctrl.ToggleComplete(context.Background(), wish.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if len(api.updatedIDs) != 1 || api.updatedIDs[0] != wish.ID {
		t.Fatalf("unexpected update targets %+v", api.updatedIDs)
	}
	if api.listCalls != listCallsBefore+1 {
		t.Fatal("expected a refetch after toggle")
	}
}

func TestDeleteRespectsConfirmation(t *testing.T) {
	wish := seedWish("Skydive", false)
	api := &fakeAPI{wishes: []apiclient.Wish{wish}}
	ctrl := newTestController(t, api)

	if err := ctrl.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	declined := func(apiclient.Wish) bool { return false }
	if err := ctrl.Delete(context.Background(), wish.ID, declined); err != nil {
		t.Fatalf("declined delete should not error: %v", err)
	}
	if len(api.deletedIDs) != 0 {
		t.Fatal("declined confirmation must not call the API")
	}

	var confirmedWish apiclient.Wish
	accepted := func(w apiclient.Wish) bool {
		confirmedWish = w
		return true
	}
	if err := ctrl.Delete(context.Background(), wish.ID, accepted); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if confirmedWish.Title != "Skydive" {
		t.Fatalf("confirmation saw wrong wish %+v", confirmedWish)
	}
	if len(api.deletedIDs) != 1 || api.deletedIDs[0] != wish.ID {
		t.Fatalf("unexpected delete targets %+v", api.deletedIDs)
	}
	if got := len(ctrl.Wishes()); got != 0 {
		t.Fatalf("expected refetched empty snapshot, got %d items", got)
	}
}

func TestFailedDeleteKeepsList(t *testing.T) {
	wish := seedWish("Skydive", false)
	api := &fakeAPI{wishes: []apiclient.Wish{wish}}
	ctrl := newTestController(t, api)

	if err := ctrl.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	api.deleteErr = pkgerrors.New(pkgerrors.CodeDependency, "server unreachable")
	if err := ctrl.Delete(context.Background(), wish.ID, nil); err == nil {
		t.Fatal("expected delete error")
	}
	if got := len(ctrl.Wishes()); got != 1 {
		t.Fatalf("snapshot should be untouched after failed delete, got %d items", got)
	}
}
