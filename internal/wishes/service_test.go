package wishes

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/wishlane/wishlane-backend/pkg/enums"
	pkgerrors "github.com/wishlane/wishlane-backend/pkg/errors"
)

func buildTestService(t *testing.T) Service {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	schema := `
CREATE TABLE IF NOT EXISTS wishes (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  title TEXT NOT NULL,
  description TEXT,
  category TEXT NOT NULL DEFAULT 'OTHER',
  priority TEXT NOT NULL DEFAULT 'MEDIUM',
  completed INTEGER NOT NULL DEFAULT 0,
  deadline DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`
	if err := conn.Exec(schema).Error; err != nil {
		t.Fatalf("create schema: %v", err)
	}

	svc, err := NewService(ServiceParams{WishRepo: NewRepository(conn)})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc
}

func assertErrorCode(t *testing.T, err error, want pkgerrors.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %s, got nil", want)
	}
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected typed error, got %v", err)
	}
	if typed.Code() != want {
		t.Fatalf("expected code %s, got %s", want, typed.Code())
	}
}

func TestServiceCreateAndListRoundtrip(t *testing.T) {
	svc := buildTestService(t)
	ctx := context.Background()
	userID := uuid.New()

	desc := "climb during the official season"
	deadline := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	created, err := svc.Create(ctx, userID, CreateWishDTO{
		Title:       "Climb Mt. Fuji",
		Description: &desc,
		Category:    enums.WishCategoryTravel,
		Priority:    enums.WishPriorityHigh,
		Deadline:    &deadline,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Category != "TRAVEL" || created.Priority != "HIGH" {
		t.Fatalf("unexpected enums: %s/%s", created.Category, created.Priority)
	}
	if created.Deadline == nil || *created.Deadline != "2026-08-01" {
		t.Fatalf("unexpected deadline: %v", created.Deadline)
	}
	if created.Completed {
		t.Fatal("new wish must start incomplete")
	}

	list, err := svc.List(ctx, userID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 wish, got %d", len(list))
	}
	if list[0].ID != created.ID || list[0].Title != "Climb Mt. Fuji" {
		t.Fatalf("roundtrip mismatch: %+v", list[0])
	}
}

func TestServiceListIsEmptySliceForNewUser(t *testing.T) {
	svc := buildTestService(t)

	list, err := svc.List(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if list == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(list) != 0 {
		t.Fatalf("expected empty list, got %d", len(list))
	}
}

func TestServiceCreateRejectsBlankTitle(t *testing.T) {
	svc := buildTestService(t)

	_, err := svc.Create(context.Background(), uuid.New(), CreateWishDTO{Title: "   "})
	assertErrorCode(t, err, pkgerrors.CodeValidation)
}

func TestServiceCreateTrimsTitle(t *testing.T) {
	svc := buildTestService(t)

	created, err := svc.Create(context.Background(), uuid.New(), CreateWishDTO{Title: "  Read more books  "})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Title != "Read more books" {
		t.Fatalf("expected trimmed title, got %q", created.Title)
	}
}

func TestServiceCreateRejectsInvalidEnums(t *testing.T) {
	svc := buildTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, uuid.New(), CreateWishDTO{
		Title:    "bad category",
		Category: enums.WishCategory("SHOPPING"),
	})
	assertErrorCode(t, err, pkgerrors.CodeValidation)

	_, err = svc.Create(ctx, uuid.New(), CreateWishDTO{
		Title:    "bad priority",
		Priority: enums.WishPriority("URGENT"),
	})
	assertErrorCode(t, err, pkgerrors.CodeValidation)
}

func TestServiceUpdateToggleCompleted(t *testing.T) {
	svc := buildTestService(t)
	ctx := context.Background()
	userID := uuid.New()

	created, err := svc.Create(ctx, userID, CreateWishDTO{Title: "Run a marathon"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	completed := true
	updated, err := svc.Update(ctx, userID, created.ID, UpdateWishDTO{Completed: &completed})
	if err != nil {
		t.Fatalf("mark complete: %v", err)
	}
	if !updated.Completed {
		t.Fatal("expected wish to be completed")
	}
	if updated.Title != "Run a marathon" {
		t.Fatalf("toggle must not change other fields, got title %q", updated.Title)
	}

	completed = false
	updated, err = svc.Update(ctx, userID, created.ID, UpdateWishDTO{Completed: &completed})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if updated.Completed {
		t.Fatal("expected wish to be reopened")
	}
}

func TestServiceUpdatePreservesCreatedAt(t *testing.T) {
	svc := buildTestService(t)
	ctx := context.Background()
	userID := uuid.New()

	created, err := svc.Create(ctx, userID, CreateWishDTO{Title: "Study statistics"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	title := "Study Bayesian statistics"
	updated, err := svc.Update(ctx, userID, created.ID, UpdateWishDTO{Title: &title})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("created_at changed: %v vs %v", updated.CreatedAt, created.CreatedAt)
	}
	if updated.UpdatedAt.Before(created.UpdatedAt) {
		t.Fatalf("updated_at went backwards: %v vs %v", updated.UpdatedAt, created.UpdatedAt)
	}
}

func TestServiceUpdateRejectsBlankTitle(t *testing.T) {
	svc := buildTestService(t)
	ctx := context.Background()
	userID := uuid.New()

	created, err := svc.Create(ctx, userID, CreateWishDTO{Title: "keep me"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	blank := "  "
	_, err = svc.Update(ctx, userID, created.ID, UpdateWishDTO{Title: &blank})
	assertErrorCode(t, err, pkgerrors.CodeValidation)

	list, err := svc.List(ctx, userID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if list[0].Title != "keep me" {
		t.Fatalf("failed update must not mutate record, got %q", list[0].Title)
	}
}

func TestServiceForeignWishLooksMissing(t *testing.T) {
	svc := buildTestService(t)
	ctx := context.Background()
	alice := uuid.New()
	bob := uuid.New()

	created, err := svc.Create(ctx, alice, CreateWishDTO{Title: "alice only"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	completed := true
	_, err = svc.Update(ctx, bob, created.ID, UpdateWishDTO{Completed: &completed})
	assertErrorCode(t, err, pkgerrors.CodeNotFound)

	err = svc.Delete(ctx, bob, created.ID)
	assertErrorCode(t, err, pkgerrors.CodeNotFound)

	// the record must be untouched
	list, err := svc.List(ctx, alice)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].Completed {
		t.Fatalf("foreign access must not mutate record: %+v", list)
	}
}

func TestServiceDeleteThenDeleteAgainIsNotFound(t *testing.T) {
	svc := buildTestService(t)
	ctx := context.Background()
	userID := uuid.New()

	created, err := svc.Create(ctx, userID, CreateWishDTO{Title: "one shot"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Delete(ctx, userID, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	err = svc.Delete(ctx, userID, created.ID)
	assertErrorCode(t, err, pkgerrors.CodeNotFound)
}

func TestServiceTwoUsersSeeOnlyTheirOwnLists(t *testing.T) {
	svc := buildTestService(t)
	ctx := context.Background()
	alice := uuid.New()
	bob := uuid.New()

	if _, err := svc.Create(ctx, alice, CreateWishDTO{Title: "alice 1"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(ctx, alice, CreateWishDTO{Title: "alice 2"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(ctx, bob, CreateWishDTO{Title: "bob 1"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	aliceList, err := svc.List(ctx, alice)
	if err != nil {
		t.Fatalf("list alice: %v", err)
	}
	bobList, err := svc.List(ctx, bob)
	if err != nil {
		t.Fatalf("list bob: %v", err)
	}
	if len(aliceList) != 2 || len(bobList) != 1 {
		t.Fatalf("expected 2/1 wishes, got %d/%d", len(aliceList), len(bobList))
	}
	for _, w := range aliceList {
		if w.UserID != alice {
			t.Fatalf("foreign record leaked into alice's list: %+v", w)
		}
	}
}
