package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTokenTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS login_tokens (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  token_hash TEXT NOT NULL UNIQUE,
  expires_at DATETIME NOT NULL,
  consumed_at DATETIME,
  created_at DATETIME
);`
	require.NoError(t, conn.Exec(schema).Error)
	return conn
}

func TestTokenConsumeIsSingleUse(t *testing.T) {
	repo := NewTokenRepository(setupTokenTestDB(t))
	ctx := context.Background()

	token, err := repo.Create(ctx, uuid.New(), "hash-1", time.Now().UTC().Add(15*time.Minute))
	require.NoError(t, err)

	now := time.Now().UTC()
	first, err := repo.Consume(ctx, token.ID, now)
	require.NoError(t, err)
	assert.True(t, first)

	second, err := repo.Consume(ctx, token.ID, now)
	require.NoError(t, err)
	assert.False(t, second)
}

func TestTokenFindByHash(t *testing.T) {
	repo := NewTokenRepository(setupTokenTestDB(t))
	ctx := context.Background()
	userID := uuid.New()

	created, err := repo.Create(ctx, userID, "hash-2", time.Now().UTC().Add(time.Minute))
	require.NoError(t, err)

	found, err := repo.FindByHash(ctx, "hash-2")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, userID, found.UserID)

	_, err = repo.FindByHash(ctx, "missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDeleteExpiredSweepsOnlyStaleTokens(t *testing.T) {
	repo := NewTokenRepository(setupTokenTestDB(t))
	ctx := context.Background()
	now := time.Now().UTC()

	_, err := repo.Create(ctx, uuid.New(), "stale", now.Add(-time.Hour))
	require.NoError(t, err)
	fresh, err := repo.Create(ctx, uuid.New(), "fresh", now.Add(time.Hour))
	require.NoError(t, err)

	swept, err := repo.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), swept)

	_, err = repo.FindByHash(ctx, "stale")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	found, err := repo.FindByHash(ctx, "fresh")
	require.NoError(t, err)
	assert.Equal(t, fresh.ID, found.ID)
}
