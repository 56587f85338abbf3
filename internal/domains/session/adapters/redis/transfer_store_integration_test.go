//go:build integration
// +build integration

package redis

import (
	"context"
	"fmt"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/Apurer/dharai-delivery/internal/domains/session/domain"
)

func setupRedisContainer(t *testing.T) (*goredis.Client, func()) {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	client := goredis.NewClient(&goredis.Options{Addr: fmt.Sprintf("%s:%s", host, port.Port())})
	require.NoError(t, client.Ping(ctx).Err())

	cleanup := func() {
		_ = client.Close()
		container.Terminate(ctx)
	}
	return client, cleanup
}

func TestTransferStore_ScopesByTab(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	client, cleanup := setupRedisContainer(t)
	defer cleanup()

	store := NewTransferStore(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "tab-a", domain.KeyCurrentOrder, `{"id":1}`))

	value, ok, err := store.Get(ctx, "tab-a", domain.KeyCurrentOrder)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"id":1}`, value)

	_, ok, err = store.Get(ctx, "tab-b", domain.KeyCurrentOrder)
	require.NoError(t, err)
	assert.False(t, ok)

	ttl, err := client.TTL(ctx, "transfer:tab-a:currentOrder").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, store.Clear(ctx, "tab-a", domain.KeyCurrentOrder))
	_, ok, err = store.Get(ctx, "tab-a", domain.KeyCurrentOrder)
	require.NoError(t, err)
	assert.False(t, ok)
}
