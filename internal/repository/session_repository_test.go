package repository_test

import (
	"context"
	"os"
	"testing"

	"github.com/Freeeeeet/classroom_bot/internal/model"
	"github.com/Freeeeeet/classroom_bot/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestPool подключается к TEST_DB_DSN и накатывает миграции.
// Без TEST_DB_DSN тест пропускается.
func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN is not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	db := stdlib.OpenDBFromPool(pool)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, goose.SetDialect("postgres"))
	require.NoError(t, goose.UpContext(ctx, db, "../../migrations"))

	_, err = pool.Exec(ctx, `TRUNCATE student_sessions`)
	require.NoError(t, err)

	return pool
}

func TestSessionRepository(t *testing.T) {
	pool := newTestPool(t)
	repo := repository.NewSessionRepository(pool)
	ctx := context.Background()

	missing, err := repo.GetByTelegramID(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, missing)

	s := &model.Session{
		TelegramID: 42,
		ChatID:     4242,
		UserID:     "u1",
		Name:       "Lan",
		Email:      "lan@example.com",
		Role:       model.RoleStudent,
		Token:      "jwt-1",
	}
	require.NoError(t, repo.Upsert(ctx, s))
	assert.False(t, s.CreatedAt.IsZero())

	require.NoError(t, repo.SetReminders(ctx, 42, true))

	// повторный логин обновляет токен, но сохраняет напоминания
	s.Token = "jwt-2"
	s.RemindersEnabled = false
	require.NoError(t, repo.Upsert(ctx, s))
	assert.True(t, s.RemindersEnabled)

	got, err := repo.GetByTelegramID(ctx, 42)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "jwt-2", got.Token)
	assert.Equal(t, int64(4242), got.ChatID)

	list, err := repo.ListReminderEnabled(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(42), list[0].TelegramID)

	deleted, err := repo.Delete(ctx, 42)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(ctx, 42)
	require.NoError(t, err)
	assert.False(t, deleted)

	assert.Error(t, repo.SetReminders(ctx, 42, true))
}
