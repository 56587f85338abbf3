package domain

import "strings"

// Keys persisted in the Session Store.
const (
	KeyIsLoggedIn = "isLoggedIn"
	KeyUserEmail  = "userEmail"
	KeySavedEmail = "savedEmail"
)

// Keys persisted in the Transfer Store.
const (
	KeyCurrentOrder = "currentOrder"
	KeyArrived      = "arrived"
)

// LoggedInSentinel is the only value of isLoggedIn that counts as signed in.
const LoggedInSentinel = "true"

// Record is the typed view of a client's Session Store entries.
type Record struct {
	LoggedIn   bool
	UserEmail  string
	SavedEmail string
}

// HasSavedEmail reports whether "remember me" left an email behind.
func (r Record) HasSavedEmail() bool {
	return strings.TrimSpace(r.SavedEmail) != ""
}

// DisplayName returns the local part of the user email, used in greetings.
func (r Record) DisplayName() string {
	name, _, _ := strings.Cut(r.UserEmail, "@")
	return name
}

// Visitor identifies who is calling. ClientID scopes the durable Session Store
// and survives browser restarts; TabID scopes the Transfer Store and lives only
// as long as the browsing session.
type Visitor struct {
	ClientID string
	TabID    string
}
