//go:build integration
// +build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Apurer/dharai-delivery/internal/domains/session/domain"
	"github.com/Apurer/dharai-delivery/internal/platform/migrations"
)

func setupPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.Run(ctx, "postgres:15-alpine",
		tcpostgres.WithDatabase("dharai_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, migrations.Run(db))

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}
	return db, cleanup
}

func TestSessionStore_SetGetClear(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	store := NewSessionStore(db, time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "client-1", domain.KeyUserEmail, "first@dharai.app"))
	require.NoError(t, store.Set(ctx, "client-1", domain.KeyUserEmail, "second@dharai.app"))

	value, ok, err := store.Get(ctx, "client-1", domain.KeyUserEmail)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "second@dharai.app", value)

	_, ok, err = store.Get(ctx, "client-2", domain.KeyUserEmail)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Clear(ctx, "client-1", domain.KeyUserEmail))
	require.NoError(t, store.Clear(ctx, "client-1", domain.KeyUserEmail))
	_, ok, err = store.Get(ctx, "client-1", domain.KeyUserEmail)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSessionStore_PurgeExpired(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	store := NewSessionStore(db, time.Minute)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "stale", domain.KeyIsLoggedIn, domain.LoggedInSentinel))

	store.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, ok, err := store.Get(ctx, "stale", domain.KeyIsLoggedIn)
	require.NoError(t, err)
	assert.False(t, ok)

	removed, err := store.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
}

func TestSessionStore_ReadsSlideExpiry(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	store := NewSessionStore(db, 10*time.Minute)
	ctx := context.Background()
	start := time.Now()
	store.now = func() time.Time { return start }
	require.NoError(t, store.Set(ctx, "courier", domain.KeyIsLoggedIn, domain.LoggedInSentinel))
	require.NoError(t, store.Set(ctx, "courier", domain.KeyUserEmail, "courier@dharai.app"))

	store.now = func() time.Time { return start.Add(8 * time.Minute) }
	_, ok, err := store.Get(ctx, "courier", domain.KeyIsLoggedIn)
	require.NoError(t, err)
	require.True(t, ok)

	store.now = func() time.Time { return start.Add(16 * time.Minute) }
	_, ok, err = store.Get(ctx, "courier", domain.KeyIsLoggedIn)
	require.NoError(t, err)
	assert.True(t, ok)
	email, ok, err := store.Get(ctx, "courier", domain.KeyUserEmail)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "courier@dharai.app", email)
}
