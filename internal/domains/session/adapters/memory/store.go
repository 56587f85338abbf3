package memory

import (
	"context"
	"sync"

	"github.com/Apurer/dharai-delivery/internal/domains/session/ports"
)

var (
	_ ports.SessionStore  = (*Store)(nil)
	_ ports.TransferStore = (*Store)(nil)
)

// Store is an in-memory key/value store usable for either role.
type Store struct {
	mu     sync.RWMutex
	scopes map[string]map[string]string
}

func NewStore() *Store {
	return &Store{scopes: map[string]map[string]string{}}
}

func (s *Store) Get(_ context.Context, scope, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.scopes[scope][key]
	return value, ok, nil
}

func (s *Store) Set(_ context.Context, scope, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries, ok := s.scopes[scope]
	if !ok {
		entries = map[string]string{}
		s.scopes[scope] = entries
	}
	entries[key] = value
	return nil
}

func (s *Store) Clear(_ context.Context, scope, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries, ok := s.scopes[scope]
	if !ok {
		return nil
	}
	delete(entries, key)
	if len(entries) == 0 {
		delete(s.scopes, scope)
	}
	return nil
}
