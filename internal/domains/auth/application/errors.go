package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/dharai-delivery/internal/domains/auth/domain"
)

var (
	// ErrInvalidInput signals the login form is incomplete.
	ErrInvalidInput = errors.New("invalid login input")
	// ErrAuthentication wraps rejected credentials.
	ErrAuthentication = errors.New("authentication failed")
	// ErrSuperseded is returned to a submission overtaken by a newer one from the same client.
	ErrSuperseded = errors.New("login superseded by a newer submission")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if errors.Is(err, domain.ErrInvalidCredentials) {
		return fmt.Errorf("%w: %w", ErrAuthentication, err)
	}
	return err
}
