package argon2

import (
	"context"
	"errors"

	"github.com/matthewhartstonge/argon2"

	"github.com/Apurer/dharai-delivery/internal/domains/auth/ports"
)

var _ ports.PasswordVerifier = (*Verifier)(nil)

// Verifier checks passwords against a single argon2id encoded hash.
type Verifier struct {
	encoded []byte
}

// NewVerifier hashes password once so the plain value is not kept in memory.
func NewVerifier(password string) (*Verifier, error) {
	if password == "" {
		return nil, errors.New("password is required")
	}
	cfg := argon2.DefaultConfig()
	encoded, err := cfg.HashEncoded([]byte(password))
	if err != nil {
		return nil, err
	}
	return &Verifier{encoded: encoded}, nil
}

// NewVerifierFromHash reuses an existing encoded hash.
func NewVerifierFromHash(encoded string) *Verifier {
	return &Verifier{encoded: []byte(encoded)}
}

func (v *Verifier) Verify(_ context.Context, password string) (bool, error) {
	if v == nil || len(v.encoded) == 0 {
		return false, errors.New("password verifier not configured")
	}
	return argon2.VerifyEncoded([]byte(password), v.encoded)
}
