// Package view holds the commands application services hand back to rendering adapters.
package view

import (
	"fmt"
	"time"
)

// Page identifies a logical screen of the courier app.
type Page string

const (
	PageLogin     Page = "login"
	PageDashboard Page = "dashboard"
	PageRoute     Page = "route"
)

// Navigation asks the adapter to move to another page, optionally after a delay
// so the user can observe the current feedback first.
type Navigation struct {
	To    Page
	After time.Duration
}

// NavigateNow builds an immediate navigation.
func NavigateNow(to Page) *Navigation {
	return &Navigation{To: to}
}

// NavigateAfter builds a delayed navigation.
func NavigateAfter(to Page, after time.Duration) *Navigation {
	return &Navigation{To: to, After: after}
}

// ConfirmationRequired is returned when an action needs an explicit yes before
// anything changes. The adapter shows Prompt and repeats the call confirmed.
type ConfirmationRequired struct {
	Prompt string
}

func (e *ConfirmationRequired) Error() string {
	return fmt.Sprintf("confirmation required: %s", e.Prompt)
}

// Confirm returns a ConfirmationRequired error unless confirmed is set.
func Confirm(confirmed bool, prompt string) error {
	if confirmed {
		return nil
	}
	return &ConfirmationRequired{Prompt: prompt}
}
