package domain

import (
	"errors"
	"strings"
	"time"
)

// Severity selects the toast colour and tone.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Phase is where a toast sits on its display timeline.
type Phase string

const (
	PhasePending  Phase = "pending"
	PhaseEntering Phase = "entering"
	PhaseVisible  Phase = "visible"
	PhaseLeaving  Phase = "leaving"
	PhaseGone     Phase = "gone"
)

// Display timeline, measured from the moment the toast is shown.
const (
	EntranceDelay   = 100 * time.Millisecond
	DisplayDuration = 3 * time.Second
	ExitDuration    = 300 * time.Millisecond
)

var ErrEmptyMessage = errors.New("toast message is required")

// Toast is one transient notification addressed to a browsing scope.
type Toast struct {
	ID        string
	Scope     string
	Message   string
	Severity  Severity
	Delay     time.Duration
	CreatedAt time.Time
}

// Option adjusts a toast before it is dispatched.
type Option func(*Toast)

// After postpones showing the toast by d.
func After(d time.Duration) Option {
	return func(t *Toast) {
		if d > 0 {
			t.Delay = d
		}
	}
}

// NewToast builds a toast, defaulting unknown severities to info.
func NewToast(id, scope, message string, severity Severity, createdAt time.Time, opts ...Option) (Toast, error) {
	if strings.TrimSpace(message) == "" {
		return Toast{}, ErrEmptyMessage
	}
	t := Toast{
		ID:        id,
		Scope:     scope,
		Message:   message,
		Severity:  NormalizeSeverity(severity),
		CreatedAt: createdAt,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&t)
		}
	}
	return t, nil
}

// NormalizeSeverity maps anything unrecognised to info.
func NormalizeSeverity(s Severity) Severity {
	switch s {
	case SeverityInfo, SeveritySuccess, SeverityError:
		return s
	default:
		return SeverityInfo
	}
}

func (t Toast) ShownAt() time.Time   { return t.CreatedAt.Add(t.Delay) }
func (t Toast) LeavesAt() time.Time  { return t.ShownAt().Add(DisplayDuration) }
func (t Toast) RemovedAt() time.Time { return t.LeavesAt().Add(ExitDuration) }

// PhaseAt reports the toast's phase at now.
func (t Toast) PhaseAt(now time.Time) Phase {
	shown := t.ShownAt()
	switch {
	case now.Before(shown):
		return PhasePending
	case now.Before(shown.Add(EntranceDelay)):
		return PhaseEntering
	case now.Before(t.LeavesAt()):
		return PhaseVisible
	case now.Before(t.RemovedAt()):
		return PhaseLeaving
	default:
		return PhaseGone
	}
}
