package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	ordersdomain "github.com/Apurer/dharai-delivery/internal/domains/orders/domain"
	ordersports "github.com/Apurer/dharai-delivery/internal/domains/orders/ports"
	sessiondomain "github.com/Apurer/dharai-delivery/internal/domains/session/domain"
	"github.com/Apurer/dharai-delivery/internal/shared/view"
)

const tracerName = "github.com/Apurer/dharai-delivery/internal/domains/orders/adapters/observability/service"

// Service decorates the dashboard service with tracing, logging, and metrics.
type Service struct {
	inner   ordersports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core dashboard service.
func New(inner ordersports.Service, opts ...Option) ordersports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  slog.New(slog.DiscardHandler),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) Dashboard(ctx context.Context, visitor sessiondomain.Visitor) (*ordersports.DashboardView, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.Dashboard")
	defer span.End()

	result, err := s.inner.Dashboard(ctx, visitor)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load dashboard")
	}
	if result.Navigation != nil {
		span.SetAttributes(attribute.String("navigate.to", string(result.Navigation.To)))
		s.logInfo(ctx, "dashboard redirected", slog.String("navigate.to", string(result.Navigation.To)))
		return result, nil
	}
	span.SetAttributes(attribute.Int("orders.count", len(result.Orders)))
	return result, nil
}

func (s *Service) ShowDetails(ctx context.Context, visitor sessiondomain.Visitor, id int64) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.ShowDetails", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	result, err := s.inner.ShowDetails(ctx, visitor, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to show order", slog.Int64("order.id", id))
	}
	return result, nil
}

func (s *Service) CancelOrder(ctx context.Context, visitor sessiondomain.Visitor, id int64, confirmed bool) (*ordersports.CancelResult, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.CancelOrder",
		trace.WithAttributes(attribute.Int64("order.id", id), attribute.Bool("confirmed", confirmed)))
	defer span.End()

	result, err := s.inner.CancelOrder(ctx, visitor, id, confirmed)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to cancel order", slog.Int64("order.id", id))
	}
	if result.Removed {
		s.metrics.recordAction(ctx, "cancel")
		s.logInfo(ctx, "order cancelled", slog.Int64("order.id", id))
	}
	return result, nil
}

func (s *Service) AdvanceOrder(ctx context.Context, visitor sessiondomain.Visitor, id int64, actionLabel string, confirmed bool) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.AdvanceOrder",
		trace.WithAttributes(attribute.Int64("order.id", id), attribute.Bool("confirmed", confirmed)))
	defer span.End()

	result, err := s.inner.AdvanceOrder(ctx, visitor, id, actionLabel, confirmed)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to advance order", slog.Int64("order.id", id))
	}
	s.metrics.recordAction(ctx, "advance")
	s.logInfo(ctx, "order advanced", slog.Int64("order.id", id), slog.String("status", string(result.Status)))
	return result, nil
}

func (s *Service) RouteToOrder(ctx context.Context, visitor sessiondomain.Visitor, id int64) (*view.Navigation, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.RouteToOrder", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	result, err := s.inner.RouteToOrder(ctx, visitor, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to route to order", slog.Int64("order.id", id))
	}
	s.metrics.recordAction(ctx, "route")
	s.logInfo(ctx, "order handed to route view", slog.Int64("order.id", id))
	return result, nil
}

func (s *Service) Logout(ctx context.Context, visitor sessiondomain.Visitor, confirmed bool) (*view.Navigation, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.Logout", trace.WithAttributes(attribute.Bool("confirmed", confirmed)))
	defer span.End()

	result, err := s.inner.Logout(ctx, visitor, confirmed)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to logout")
	}
	s.logInfo(ctx, "courier logged out", slog.String("client.id", visitor.ClientID))
	return result, nil
}

func (s *Service) SelectMenuItem(ctx context.Context, visitor sessiondomain.Visitor, label string) error {
	ctx, span := s.tracer.Start(ctx, "OrdersService.SelectMenuItem", trace.WithAttributes(attribute.String("menu.label", label)))
	defer span.End()

	if err := s.inner.SelectMenuItem(ctx, visitor, label); err != nil {
		return s.handleError(ctx, span, err, "failed to select menu item")
	}
	return nil
}

func (s *Service) MarkDelivered(ctx context.Context, id int64) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.MarkDelivered", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	result, err := s.inner.MarkDelivered(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to mark order delivered", slog.Int64("order.id", id))
	}
	s.metrics.recordAction(ctx, "deliver")
	s.logInfo(ctx, "order delivered", slog.Int64("order.id", id))
	return result, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

type serviceMetrics struct {
	actions metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	actions, _ := m.Int64Counter("orders.service.actions", metric.WithDescription("Number of dashboard order actions applied"))
	return serviceMetrics{actions: actions}
}

func (m serviceMetrics) recordAction(ctx context.Context, action string) {
	if m.actions != nil {
		m.actions.Add(ctx, 1, metric.WithAttributes(attribute.String("order.action", action)))
	}
}

var _ ordersports.Service = (*Service)(nil)
