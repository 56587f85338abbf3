package ports

import (
	"context"
	"time"

	"github.com/Apurer/dharai-delivery/internal/domains/notifications/domain"
)

// Notifier shows a transient toast to a browsing scope. It never reports failure to the caller.
type Notifier interface {
	Notify(ctx context.Context, scope, message string, severity domain.Severity, opts ...domain.Option)
}

// Sink receives dispatched toasts.
type Sink interface {
	Deliver(ctx context.Context, toast domain.Toast) error
}

// Feed lists the toasts a scope should currently render.
type Feed interface {
	Active(ctx context.Context, scope string, now time.Time) ([]domain.Toast, error)
}

// NoopNotifier drops every toast.
var NoopNotifier Notifier = noopNotifier{}

type noopNotifier struct{}

func (noopNotifier) Notify(context.Context, string, string, domain.Severity, ...domain.Option) {}
