// Package clientid issues and verifies the signed identifiers that scope the
// Session Store (per browser) and the Transfer Store (per browsing session).
package clientid

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Kind distinguishes the durable client id from the per-session tab id.
type Kind string

const (
	KindClient Kind = "client"
	KindTab    Kind = "tab"
)

// Cookie names carrying the two identifiers.
const (
	ClientCookie = "dharai_client"
	TabCookie    = "dharai_tab"
)

const issuer = "dharai-delivery"

var ErrInvalidToken = errors.New("invalid client token")

type claims struct {
	jwt.RegisteredClaims
	Kind Kind `json:"kind"`
}

// Issuer signs identifiers with HS256.
type Issuer struct {
	secret    []byte
	clientTTL time.Duration
	tabTTL    time.Duration
	now       func() time.Time
}

// NewIssuer requires a secret of at least 16 bytes.
func NewIssuer(secret string, clientTTL, tabTTL time.Duration) (*Issuer, error) {
	if len(strings.TrimSpace(secret)) < 16 {
		return nil, errors.New("client token secret must be at least 16 characters")
	}
	if clientTTL <= 0 || tabTTL <= 0 {
		return nil, errors.New("client token lifetimes must be positive")
	}
	return &Issuer{secret: []byte(secret), clientTTL: clientTTL, tabTTL: tabTTL, now: time.Now}, nil
}

// ClientTTL is how long the durable identifier cookie lives.
func (i *Issuer) ClientTTL() time.Duration { return i.clientTTL }

// Issue mints a new random identifier of the given kind and its signed token.
func (i *Issuer) Issue(kind Kind) (id, token string, err error) {
	ttl := i.clientTTL
	if kind == KindTab {
		ttl = i.tabTTL
	}
	now := i.now()
	id = uuid.NewString()
	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   id,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Kind: kind,
	}).SignedString(i.secret)
	if err != nil {
		return "", "", fmt.Errorf("sign %s token: %w", kind, err)
	}
	return id, token, nil
}

// Parse verifies token and returns the identifier it carries.
func (i *Issuer) Parse(kind Kind, token string) (string, error) {
	if strings.TrimSpace(token) == "" {
		return "", ErrInvalidToken
	}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(i.now),
	)
	parsed := &claims{}
	tok, err := parser.ParseWithClaims(token, parsed, func(*jwt.Token) (any, error) {
		return i.secret, nil
	})
	if err != nil {
		return "", errors.Join(ErrInvalidToken, err)
	}
	if !tok.Valid || parsed.Kind != kind || parsed.Subject == "" {
		return "", ErrInvalidToken
	}
	return parsed.Subject, nil
}
