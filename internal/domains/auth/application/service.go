package application

import (
	"context"
	"time"

	"github.com/Apurer/dharai-delivery/internal/domains/auth/domain"
	"github.com/Apurer/dharai-delivery/internal/domains/auth/ports"
	sessionapp "github.com/Apurer/dharai-delivery/internal/domains/session/application"
	sessiondomain "github.com/Apurer/dharai-delivery/internal/domains/session/domain"
	"github.com/Apurer/dharai-delivery/internal/shared/view"
)

// Sleeper waits for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// Service implements the Auth Gate.
type Service struct {
	sessions    *sessionapp.Sessions
	verifier    ports.PasswordVerifier
	latency     time.Duration
	sleep       Sleeper
	submissions *submissions
}

type Option func(*Service)

// WithLatency overrides the simulated backend round-trip.
func WithLatency(d time.Duration) Option {
	return func(s *Service) {
		if d >= 0 {
			s.latency = d
		}
	}
}

func WithSleeper(sleep Sleeper) Option {
	return func(s *Service) {
		if sleep != nil {
			s.sleep = sleep
		}
	}
}

func NewService(sessions *sessionapp.Sessions, verifier ports.PasswordVerifier, opts ...Option) *Service {
	s := &Service{
		sessions:    sessions,
		verifier:    verifier,
		latency:     domain.SubmitLatency,
		sleep:       sleepContext,
		submissions: newSubmissions(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Service) LoginView(ctx context.Context, visitor sessiondomain.Visitor) (*ports.LoginView, error) {
	record, err := s.sessions.Load(ctx, visitor.ClientID)
	if err != nil {
		return nil, err
	}
	if !record.HasSavedEmail() {
		return &ports.LoginView{}, nil
	}
	return &ports.LoginView{Email: record.SavedEmail, RememberMe: true}, nil
}

func (s *Service) CheckEmail(_ context.Context, email string) ports.EmailCheck {
	return ports.EmailCheck{
		Email:     email,
		Valid:     domain.ValidateEmail(email),
		Plausible: domain.PlausibleEmail(email),
	}
}

// SubmitCredentials simulates the backend round-trip. Any email is accepted
// together with the demo password.
func (s *Service) SubmitCredentials(ctx context.Context, creds domain.Credentials) (*sessiondomain.Record, error) {
	if err := s.sleep(ctx, s.latency); err != nil {
		return nil, err
	}
	ok, err := s.verifier.Verify(ctx, creds.Password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, mapError(domain.ErrInvalidCredentials)
	}
	record := &sessiondomain.Record{LoggedIn: true, UserEmail: creds.Email}
	if creds.RememberMe {
		record.SavedEmail = creds.Email
	}
	return record, nil
}

// Login validates the form, submits it and persists the session when the
// submission is still the latest one for the client.
func (s *Service) Login(ctx context.Context, visitor sessiondomain.Visitor, creds domain.Credentials) (*ports.LoginResult, error) {
	creds.Normalize()
	if err := creds.Validate(); err != nil {
		return nil, mapError(err)
	}
	if visitor.ClientID == "" {
		return nil, sessionapp.ErrMissingClient
	}
	token := s.submissions.begin(visitor.ClientID)
	record, err := s.SubmitCredentials(ctx, creds)
	if !s.submissions.finish(visitor.ClientID, token) {
		return nil, ErrSuperseded
	}
	if err != nil {
		return nil, err
	}
	if err := s.sessions.SignIn(ctx, visitor.ClientID, creds.Email, creds.RememberMe); err != nil {
		return nil, err
	}
	return &ports.LoginResult{
		Session:    *record,
		Navigation: view.NavigateAfter(view.PageDashboard, domain.SuccessRedirectWait),
	}, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

var _ ports.Service = (*Service)(nil)
