package ports

import (
	"context"

	"github.com/Apurer/dharai-delivery/internal/domains/auth/domain"
	sessiondomain "github.com/Apurer/dharai-delivery/internal/domains/session/domain"
	"github.com/Apurer/dharai-delivery/internal/shared/view"
)

// LoginView is what the login page renders on load.
type LoginView struct {
	Email      string
	RememberMe bool
}

// LoginResult is returned after a successful login.
type LoginResult struct {
	Session    sessiondomain.Record
	Navigation *view.Navigation
}

// EmailCheck reports both email checks for live form feedback.
type EmailCheck struct {
	Email     string
	Valid     bool
	Plausible bool
}

// Service exposes the Auth Gate use cases to adapters.
type Service interface {
	LoginView(ctx context.Context, visitor sessiondomain.Visitor) (*LoginView, error)
	CheckEmail(ctx context.Context, email string) EmailCheck
	SubmitCredentials(ctx context.Context, creds domain.Credentials) (*sessiondomain.Record, error)
	Login(ctx context.Context, visitor sessiondomain.Visitor, creds domain.Credentials) (*LoginResult, error)
}
