package redis

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/Apurer/dharai-delivery/internal/domains/session/ports"
)

var _ ports.TransferStore = (*TransferStore)(nil)

// DefaultTransferTTL bounds how long an abandoned browsing session keeps its handoff.
const DefaultTransferTTL = 12 * time.Hour

// TransferStore keeps Transfer Store entries as redis strings under transfer:<tab>:<key>.
type TransferStore struct {
	client goredis.Cmdable
	ttl    time.Duration
}

func NewTransferStore(client goredis.Cmdable, ttl time.Duration) *TransferStore {
	if ttl <= 0 {
		ttl = DefaultTransferTTL
	}
	return &TransferStore{client: client, ttl: ttl}
}

func (s *TransferStore) Get(ctx context.Context, tabID, key string) (string, bool, error) {
	if s == nil || s.client == nil {
		return "", false, ports.ErrStoreNotConfigured
	}
	value, err := s.client.Get(ctx, entryKey(tabID, key)).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *TransferStore) Set(ctx context.Context, tabID, key, value string) error {
	if s == nil || s.client == nil {
		return ports.ErrStoreNotConfigured
	}
	return s.client.Set(ctx, entryKey(tabID, key), value, s.ttl).Err()
}

func (s *TransferStore) Clear(ctx context.Context, tabID, key string) error {
	if s == nil || s.client == nil {
		return ports.ErrStoreNotConfigured
	}
	return s.client.Del(ctx, entryKey(tabID, key)).Err()
}

func entryKey(tabID, key string) string {
	return "transfer:" + tabID + ":" + key
}
