package domain

import (
	"errors"
	"regexp"
	"sort"
	"strings"
	"time"
)

// DemoPassword is the only password the simulated backend accepts.
const DemoPassword = "demo123"

// InvalidCredentialsHint is shown when the simulated backend rejects a login.
const InvalidCredentialsHint = `Invalid credentials. Use password "demo123" for demo.`

// Timing of the login form feedback.
const (
	SubmitLatency       = 1500 * time.Millisecond
	SuccessRedirectWait = 1000 * time.Millisecond
	FailureResetWait    = 2000 * time.Millisecond
	ShakeDuration       = 500 * time.Millisecond
)

var (
	ErrInvalidCredentials = errors.New(InvalidCredentialsHint)
	ErrEmptyEmail         = errors.New("email is required")
	ErrEmptyPassword      = errors.New("password is required")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateEmail reports whether s looks like local@domain.tld with no whitespace.
func ValidateEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// PlausibleEmail is the looser check applied while the user is still typing.
func PlausibleEmail(s string) bool {
	return ValidateEmail(s) || len(s) >= 3
}

// Credentials are the login form values.
type Credentials struct {
	Email      string
	Password   string
	RememberMe bool
}

// Normalize trims the email. The password is submitted as typed.
func (c *Credentials) Normalize() {
	c.Email = strings.TrimSpace(c.Email)
}

// Validate checks that both fields carry something other than whitespace.
func (c Credentials) Validate() error {
	fields := map[string]error{}
	if strings.TrimSpace(c.Email) == "" {
		fields["email"] = ErrEmptyEmail
	}
	if strings.TrimSpace(c.Password) == "" {
		fields["password"] = ErrEmptyPassword
	}
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

// ValidationError lists the empty form fields.
type ValidationError struct {
	Fields map[string]error
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return "missing required fields: " + strings.Join(names, ", ")
}

// Unwrap exposes the per-field errors to errors.Is.
func (e *ValidationError) Unwrap() []error {
	errs := make([]error, 0, len(e.Fields))
	for _, err := range e.Fields {
		errs = append(errs, err)
	}
	return errs
}

// Messages flattens field errors for display.
func (e *ValidationError) Messages() map[string]string {
	out := make(map[string]string, len(e.Fields))
	for name, err := range e.Fields {
		out[name] = err.Error()
	}
	return out
}
