package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/dharai-delivery/internal/domains/session/adapters/memory"
	"github.com/Apurer/dharai-delivery/internal/domains/session/domain"
)

func TestSignIn_RememberMeSurvivesReload(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	require.NoError(t, NewSessions(store).SignIn(ctx, "client-1", "courier@dharai.app", true))

	// a fresh facade over the same store stands in for a page reload
	record, err := NewSessions(store).Load(ctx, "client-1")
	require.NoError(t, err)
	require.True(t, record.LoggedIn)
	require.Equal(t, "courier@dharai.app", record.UserEmail)
	require.Equal(t, "courier@dharai.app", record.SavedEmail)
}

func TestSignIn_WithoutRememberMeDropsSavedEmail(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	sessions := NewSessions(store)

	require.NoError(t, sessions.SignIn(ctx, "client-1", "first@dharai.app", true))
	require.NoError(t, sessions.SignIn(ctx, "client-1", "second@dharai.app", false))

	record, err := NewSessions(store).Load(ctx, "client-1")
	require.NoError(t, err)
	require.False(t, record.HasSavedEmail())
	require.Equal(t, "second@dharai.app", record.UserEmail)
}

func TestSignOut_KeepsSavedEmail(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	sessions := NewSessions(store)

	require.NoError(t, sessions.SignIn(ctx, "client-1", "courier@dharai.app", true))
	require.NoError(t, sessions.SignOut(ctx, "client-1"))

	record, err := sessions.Load(ctx, "client-1")
	require.NoError(t, err)
	require.False(t, record.LoggedIn)
	require.Empty(t, record.UserEmail)
	require.Equal(t, "courier@dharai.app", record.SavedEmail)

	_, ok, err := store.Get(ctx, "client-1", domain.KeyIsLoggedIn)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestLoad_OnlyTrueSentinelCounts(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "client-1", domain.KeyIsLoggedIn, "yes"))

	record, err := NewSessions(store).Load(ctx, "client-1")
	require.NoError(t, err)
	require.False(t, record.LoggedIn)
}

func TestLoad_RequiresClient(t *testing.T) {
	_, err := NewSessions(memory.NewStore()).Load(context.Background(), " ")
	require.ErrorIs(t, err, ErrMissingClient)
}

func TestRecord_DisplayName(t *testing.T) {
	require.Equal(t, "courier", domain.Record{UserEmail: "courier@dharai.app"}.DisplayName())
	require.Equal(t, "plain", domain.Record{UserEmail: "plain"}.DisplayName())
}
