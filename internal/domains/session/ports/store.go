package ports

import (
	"context"
	"errors"
)

// ErrStoreNotConfigured is returned by adapters constructed without a backend.
var ErrStoreNotConfigured = errors.New("key/value store not configured")

// Store is a key/value store partitioned by scope.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, scope, key string) (string, bool, error)
	Set(ctx context.Context, scope, key, value string) error
	// Clear removes key. Clearing a missing key is not an error.
	Clear(ctx context.Context, scope, key string) error
}

// SessionStore is the durable store keyed by client id.
type SessionStore interface {
	Store
}

// TransferStore is the ephemeral store keyed by browsing id.
type TransferStore interface {
	Store
}
