package application

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/dharai-delivery/internal/domains/auth/domain"
	sessionmemory "github.com/Apurer/dharai-delivery/internal/domains/session/adapters/memory"
	sessionapp "github.com/Apurer/dharai-delivery/internal/domains/session/application"
	sessiondomain "github.com/Apurer/dharai-delivery/internal/domains/session/domain"
	"github.com/Apurer/dharai-delivery/internal/shared/view"
)

type fakeVerifier struct {
	password string
	calls    atomic.Int32
}

func (f *fakeVerifier) Verify(_ context.Context, password string) (bool, error) {
	f.calls.Add(1)
	return password == f.password, nil
}

func noSleep(ctx context.Context, _ time.Duration) error { return ctx.Err() }

var visitor = sessiondomain.Visitor{ClientID: "client-1", TabID: "tab-1"}

func newTestService(opts ...Option) (*Service, *sessionmemory.Store, *fakeVerifier) {
	store := sessionmemory.NewStore()
	verifier := &fakeVerifier{password: domain.DemoPassword}
	opts = append([]Option{WithSleeper(noSleep)}, opts...)
	return NewService(sessionapp.NewSessions(store), verifier, opts...), store, verifier
}

func TestSubmitCredentials_AcceptsAnyEmailWithDemoPassword(t *testing.T) {
	svc, _, _ := newTestService()
	for _, email := range []string{"courier@dharai.app", "not-an-email", ""} {
		record, err := svc.SubmitCredentials(context.Background(), domain.Credentials{Email: email, Password: "demo123"})
		require.NoError(t, err)
		assert.True(t, record.LoggedIn)
		assert.Equal(t, email, record.UserEmail)
	}
}

func TestSubmitCredentials_RejectsWrongPassword(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.SubmitCredentials(context.Background(), domain.Credentials{Email: "a@b.co", Password: "wrong"})
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
	require.ErrorIs(t, err, ErrAuthentication)
	assert.Contains(t, err.Error(), `Use password "demo123" for demo.`)
}

func TestSubmitCredentials_WaitsForLatency(t *testing.T) {
	var waited time.Duration
	svc, _, _ := newTestService(WithLatency(1500*time.Millisecond), WithSleeper(func(_ context.Context, d time.Duration) error {
		waited = d
		return nil
	}))
	_, err := svc.SubmitCredentials(context.Background(), domain.Credentials{Password: "demo123"})
	require.NoError(t, err)
	assert.Equal(t, 1500*time.Millisecond, waited)
}

func TestSubmitCredentials_CancelledContext(t *testing.T) {
	store := sessionmemory.NewStore()
	svc := NewService(sessionapp.NewSessions(store), &fakeVerifier{password: "demo123"}, WithLatency(time.Hour))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := svc.SubmitCredentials(ctx, domain.Credentials{Password: "demo123"})
	require.ErrorIs(t, err, context.Canceled)
}

func TestLogin_SuccessPersistsSessionAndNavigates(t *testing.T) {
	svc, store, _ := newTestService()
	ctx := context.Background()

	result, err := svc.Login(ctx, visitor, domain.Credentials{Email: " courier@dharai.app ", Password: "demo123", RememberMe: true})
	require.NoError(t, err)
	assert.Equal(t, view.PageDashboard, result.Navigation.To)
	assert.Equal(t, time.Second, result.Navigation.After)

	flag, ok, err := store.Get(ctx, visitor.ClientID, sessiondomain.KeyIsLoggedIn)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "true", flag)

	loginView, err := svc.LoginView(ctx, visitor)
	require.NoError(t, err)
	assert.Equal(t, "courier@dharai.app", loginView.Email)
	assert.True(t, loginView.RememberMe)
}

func TestLogin_WithoutRememberMeLeavesNoSavedEmail(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Login(ctx, visitor, domain.Credentials{Email: "courier@dharai.app", Password: "demo123"})
	require.NoError(t, err)

	loginView, err := svc.LoginView(ctx, visitor)
	require.NoError(t, err)
	assert.Empty(t, loginView.Email)
	assert.False(t, loginView.RememberMe)
}

func TestLogin_EmptyFieldsNeverSubmit(t *testing.T) {
	svc, _, verifier := newTestService()

	_, err := svc.Login(context.Background(), visitor, domain.Credentials{Email: "", Password: "demo123"})
	require.ErrorIs(t, err, ErrInvalidInput)
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "email")
	assert.Zero(t, verifier.calls.Load())
}

func TestLogin_FailureLeavesSessionUntouched(t *testing.T) {
	svc, store, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Login(ctx, visitor, domain.Credentials{Email: "courier@dharai.app", Password: "nope", RememberMe: true})
	require.ErrorIs(t, err, ErrAuthentication)

	for _, key := range []string{sessiondomain.KeyIsLoggedIn, sessiondomain.KeyUserEmail, sessiondomain.KeySavedEmail} {
		_, ok, err := store.Get(ctx, visitor.ClientID, key)
		require.NoError(t, err)
		assert.False(t, ok, key)
	}
}

func TestLogin_StaleSubmissionIsDiscarded(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int32
	sleeper := func(ctx context.Context, _ time.Duration) error {
		if calls.Add(1) == 1 {
			close(started)
			<-release
		}
		return nil
	}
	svc, store, _ := newTestService(WithSleeper(sleeper))
	ctx := context.Background()

	firstErr := make(chan error, 1)
	go func() {
		_, err := svc.Login(ctx, visitor, domain.Credentials{Email: "first@dharai.app", Password: "demo123"})
		firstErr <- err
	}()
	<-started

	_, err := svc.Login(ctx, visitor, domain.Credentials{Email: "second@dharai.app", Password: "demo123"})
	require.NoError(t, err)

	close(release)
	require.ErrorIs(t, <-firstErr, ErrSuperseded)

	email, _, err := store.Get(ctx, visitor.ClientID, sessiondomain.KeyUserEmail)
	require.NoError(t, err)
	assert.Equal(t, "second@dharai.app", email)
	assert.Zero(t, svc.submissions.pending())
}

func TestLogin_FinishedSubmissionsAreForgotten(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		client := sessiondomain.Visitor{ClientID: fmt.Sprintf("client-%d", i), TabID: "tab"}
		_, err := svc.Login(ctx, client, domain.Credentials{Email: "courier@dharai.app", Password: "demo123"})
		require.NoError(t, err)
	}
	_, err := svc.Login(ctx, visitor, domain.Credentials{Email: "courier@dharai.app", Password: "wrong"})
	require.Error(t, err)

	assert.Zero(t, svc.submissions.pending())
}

func TestCheckEmail(t *testing.T) {
	svc, _, _ := newTestService()
	check := svc.CheckEmail(context.Background(), "abc")
	assert.False(t, check.Valid)
	assert.True(t, check.Plausible)
}
