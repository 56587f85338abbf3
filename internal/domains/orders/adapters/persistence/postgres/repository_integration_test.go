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

	ordersapp "github.com/Apurer/dharai-delivery/internal/domains/orders/application"
	"github.com/Apurer/dharai-delivery/internal/domains/orders/domain"
	"github.com/Apurer/dharai-delivery/internal/domains/orders/ports"
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

func TestPostgresRepository_SeedAndList(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	require.NoError(t, ordersapp.EnsureSeeded(ctx, repo))
	require.NoError(t, ordersapp.EnsureSeeded(ctx, repo))

	orders, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 3)
	assert.Equal(t, "#833raew", orders[0].Reference)
	assert.Equal(t, "Mohamed Ali", orders[1].CustomerName)
	assert.Equal(t, domain.NoNote, orders[1].Note)
}

func TestPostgresRepository_SaveUpdatesAndDelete(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()
	require.NoError(t, ordersapp.EnsureSeeded(ctx, repo))

	order, err := repo.GetByID(ctx, 2)
	require.NoError(t, err)
	require.NoError(t, order.Complete())
	saved, err := repo.Save(ctx, order)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, saved.Status)

	require.NoError(t, repo.Delete(ctx, 3))
	require.ErrorIs(t, repo.Delete(ctx, 3), ports.ErrNotFound)
	_, err = repo.GetByID(ctx, 3)
	require.ErrorIs(t, err, ports.ErrNotFound)
}
