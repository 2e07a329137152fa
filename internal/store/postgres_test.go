// Integration tests use testcontainers-go to spin up a PostgreSQL container
// and are skipped when Docker is unavailable.
package store

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"gamble-bot/internal/model"
)

// checkDockerAvailable checks if Docker is available and running
func checkDockerAvailable() bool {
	cmd := exec.Command("docker", "info")
	err := cmd.Run()
	return err == nil
}

// setupTestDB creates a PostgreSQL container and returns a connection pool
func setupTestDB(t *testing.T) (*pgxpool.Pool, func()) {
	if !checkDockerAvailable() {
		t.Skip("Docker is not available, skipping integration test")
	}

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)

	require.NoError(t, Migrate(ctx, pool))

	cleanup := func() {
		pool.Close()
		_ = pgContainer.Terminate(ctx)
	}

	return pool, cleanup
}

func TestPostgres_GetNotFound(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	s := NewPostgres(pool)

	_, err := s.Get(context.Background(), "99999")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostgres_UpsertRoundTrip(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	s := NewPostgres(pool)
	ctx := context.Background()

	daily := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	work := daily.Add(30 * time.Minute)
	rec := &model.PlayerRecord{
		UserID:    "12345",
		Cash:      2500,
		Level:     1,
		XP:        1200,
		Wins:      3,
		Losses:    5,
		TotalBet:  4000,
		TotalWon:  2100,
		LastDaily: &daily,
		LastWork:  &work,
	}
	require.NoError(t, s.Upsert(ctx, rec))

	got, err := s.Get(ctx, "12345")
	require.NoError(t, err)
	assert.Equal(t, "12345", got.UserID)
	assert.Equal(t, int64(2500), got.Cash)
	assert.Equal(t, int64(1), got.Level)
	assert.Equal(t, int64(1200), got.XP)
	assert.Equal(t, int64(3), got.Wins)
	assert.Equal(t, int64(5), got.Losses)
	assert.Equal(t, int64(4000), got.TotalBet)
	assert.Equal(t, int64(2100), got.TotalWon)
	require.NotNil(t, got.LastDaily)
	assert.True(t, got.LastDaily.Equal(daily))
	require.NotNil(t, got.LastWork)
	assert.True(t, got.LastWork.Equal(work))
}

func TestPostgres_UpsertReplacesExisting(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	s := NewPostgres(pool)
	ctx := context.Background()

	rec := model.NewPlayerRecord("7")
	require.NoError(t, s.Upsert(ctx, rec))

	rec.Cash = 9999
	rec.Wins = 2
	require.NoError(t, s.Upsert(ctx, rec))

	got, err := s.Get(ctx, "7")
	require.NoError(t, err)
	assert.Equal(t, int64(9999), got.Cash)
	assert.Equal(t, int64(2), got.Wins)
	assert.Nil(t, got.LastDaily)
}

func TestPostgres_All(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	s := NewPostgres(pool)
	ctx := context.Background()

	for _, id := range []string{"1", "2", "3"} {
		require.NoError(t, s.Upsert(ctx, model.NewPlayerRecord(id)))
	}

	all, err := s.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)

	seen := make(map[string]bool)
	for _, rec := range all {
		seen[rec.UserID] = true
		assert.Equal(t, int64(model.DefaultStartingCash), rec.Cash)
	}
	assert.Len(t, seen, 3)
}
