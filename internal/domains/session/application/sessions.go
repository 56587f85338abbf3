package application

import (
	"context"
	"errors"
	"strings"

	"github.com/Apurer/dharai-delivery/internal/domains/session/domain"
	"github.com/Apurer/dharai-delivery/internal/domains/session/ports"
)

// ErrMissingClient is returned when a call carries no client id to scope the store.
var ErrMissingClient = errors.New("client id is required")

// Sessions reads and writes the login state kept in the Session Store.
type Sessions struct {
	store ports.SessionStore
}

func NewSessions(store ports.SessionStore) *Sessions {
	return &Sessions{store: store}
}

// Load returns the record for clientID. A client with no entries yields the zero record.
func (s *Sessions) Load(ctx context.Context, clientID string) (domain.Record, error) {
	if strings.TrimSpace(clientID) == "" {
		return domain.Record{}, ErrMissingClient
	}
	var record domain.Record
	flag, _, err := s.store.Get(ctx, clientID, domain.KeyIsLoggedIn)
	if err != nil {
		return domain.Record{}, err
	}
	record.LoggedIn = flag == domain.LoggedInSentinel
	if record.UserEmail, _, err = s.store.Get(ctx, clientID, domain.KeyUserEmail); err != nil {
		return domain.Record{}, err
	}
	if record.SavedEmail, _, err = s.store.Get(ctx, clientID, domain.KeySavedEmail); err != nil {
		return domain.Record{}, err
	}
	return record, nil
}

// SignIn persists a successful login. savedEmail follows rememberMe.
func (s *Sessions) SignIn(ctx context.Context, clientID, email string, rememberMe bool) error {
	if strings.TrimSpace(clientID) == "" {
		return ErrMissingClient
	}
	if rememberMe {
		if err := s.store.Set(ctx, clientID, domain.KeySavedEmail, email); err != nil {
			return err
		}
	} else if err := s.store.Clear(ctx, clientID, domain.KeySavedEmail); err != nil {
		return err
	}
	if err := s.store.Set(ctx, clientID, domain.KeyIsLoggedIn, domain.LoggedInSentinel); err != nil {
		return err
	}
	return s.store.Set(ctx, clientID, domain.KeyUserEmail, email)
}

// SignOut clears the login flag and user email. savedEmail is kept for the next login form.
func (s *Sessions) SignOut(ctx context.Context, clientID string) error {
	if strings.TrimSpace(clientID) == "" {
		return ErrMissingClient
	}
	if err := s.store.Clear(ctx, clientID, domain.KeyIsLoggedIn); err != nil {
		return err
	}
	return s.store.Clear(ctx, clientID, domain.KeyUserEmail)
}
