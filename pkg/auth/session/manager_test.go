package session

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	redislib "github.com/redis/go-redis/v9"
)

type mockStore struct {
	mu   sync.Mutex
	data map[string]string
}

func newMockStore() *mockStore {
	return &mockStore{data: make(map[string]string)}
}

func (m *mockStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = fmt.Sprint(value)
	return nil
}

func (m *mockStore) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.data[key]
	if !ok {
		return "", redislib.Nil
	}
	return val, nil
}

func (m *mockStore) Del(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.data, key)
	}
	return nil
}

type mockKeyer struct{}

func (mockKeyer) AccessSessionKey(accessID string) string {
	return "test:session:access:" + accessID
}

func newTestManager() (*Manager, *mockStore) {
	store := newMockStore()
	return &Manager{store: store, keyer: mockKeyer{}, ttl: time.Hour}, store
}

func TestGenerateStoresToken(t *testing.T) {
	manager, store := newTestManager()

	token, err := manager.Generate(context.Background(), "acc-1")
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty refresh token")
	}
	if store.data["test:session:access:acc-1"] != token {
		t.Fatal("token not persisted under the session key")
	}
}

func TestRotateInvalidatesOldSession(t *testing.T) {
	manager, store := newTestManager()
	ctx := context.Background()

	token, err := manager.Generate(ctx, "acc-1")
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	newID, newToken, err := manager.Rotate(ctx, "acc-1", token)
	if err != nil {
		t.Fatalf("Rotate returned error: %v", err)
	}
	if newID == "" || newToken == "" {
		t.Fatal("expected new session pair")
	}
	if _, ok := store.data["test:session:access:acc-1"]; ok {
		t.Fatal("old session should be deleted after rotation")
	}
	if store.data["test:session:access:"+newID] != newToken {
		t.Fatal("new token not persisted")
	}

	if _, _, err := manager.Rotate(ctx, "acc-1", token); err != ErrInvalidRefreshToken {
		t.Fatalf("expected ErrInvalidRefreshToken for reused session, got %v", err)
	}
}

func TestRotateRejectsMismatchedToken(t *testing.T) {
	manager, _ := newTestManager()
	ctx := context.Background()

	if _, err := manager.Generate(ctx, "acc-1"); err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if _, _, err := manager.Rotate(ctx, "acc-1", "forged"); err != ErrInvalidRefreshToken {
		t.Fatalf("expected ErrInvalidRefreshToken, got %v", err)
	}
}

func TestRevokeAndHasSession(t *testing.T) {
	manager, _ := newTestManager()
	ctx := context.Background()

	if _, err := manager.Generate(ctx, "acc-1"); err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	ok, err := manager.HasSession(ctx, "acc-1")
	if err != nil {
		t.Fatalf("HasSession returned error: %v", err)
	}
	if !ok {
		t.Fatal("expected session to exist")
	}

	if err := manager.Revoke(ctx, "acc-1"); err != nil {
		t.Fatalf("Revoke returned error: %v", err)
	}

	ok, err = manager.HasSession(ctx, "acc-1")
	if err != nil {
		t.Fatalf("HasSession returned error: %v", err)
	}
	if ok {
		t.Fatal("expected session to be gone after revoke")
	}
}
