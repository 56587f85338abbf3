package application

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Apurer/dharai-delivery/internal/domains/notifications/domain"
	"github.com/Apurer/dharai-delivery/internal/domains/notifications/ports"
)

var _ ports.Notifier = (*Dispatcher)(nil)

// Dispatcher builds toasts and fans them out to every sink.
type Dispatcher struct {
	sinks  []ports.Sink
	logger *slog.Logger
	now    func() time.Time
	newID  func() string
}

type Option func(*Dispatcher)

func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithClock overrides the creation timestamp source.
func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) {
		if now != nil {
			d.now = now
		}
	}
}

func NewDispatcher(sinks []ports.Sink, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		sinks:  sinks,
		logger: slog.New(slog.DiscardHandler),
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

func (d *Dispatcher) Notify(ctx context.Context, scope, message string, severity domain.Severity, opts ...domain.Option) {
	toast, err := domain.NewToast(d.newID(), scope, message, severity, d.now(), opts...)
	if err != nil {
		d.logger.LogAttrs(ctx, slog.LevelWarn, "toast dropped", slog.String("scope", scope), slog.String("error", err.Error()))
		return
	}
	for _, sink := range d.sinks {
		if sink == nil {
			continue
		}
		if err := sink.Deliver(ctx, toast); err != nil {
			d.logger.LogAttrs(ctx, slog.LevelError, "toast sink failed",
				slog.String("toast.id", toast.ID),
				slog.String("scope", scope),
				slog.String("error", err.Error()))
		}
	}
	d.logger.LogAttrs(ctx, slog.LevelDebug, "toast dispatched",
		slog.String("toast.id", toast.ID),
		slog.String("severity", string(toast.Severity)),
		slog.Duration("delay", toast.Delay))
}
