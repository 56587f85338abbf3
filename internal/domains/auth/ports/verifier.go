package ports

import "context"

// PasswordVerifier decides whether a password is accepted.
type PasswordVerifier interface {
	Verify(ctx context.Context, password string) (bool, error)
}
