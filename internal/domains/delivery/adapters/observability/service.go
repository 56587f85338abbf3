package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	deliveryports "github.com/Apurer/dharai-delivery/internal/domains/delivery/ports"
	sessiondomain "github.com/Apurer/dharai-delivery/internal/domains/session/domain"
	"github.com/Apurer/dharai-delivery/internal/shared/view"
)

const tracerName = "github.com/Apurer/dharai-delivery/internal/domains/delivery/adapters/observability/service"

// Service decorates the route service with tracing, logging, and metrics.
type Service struct {
	inner   deliveryports.Service
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

// New wraps the core route service.
func New(inner deliveryports.Service, opts ...Option) deliveryports.Service {
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

func (s *Service) RouteView(ctx context.Context, visitor sessiondomain.Visitor) (*deliveryports.RouteView, error) {
	ctx, span := s.tracer.Start(ctx, "DeliveryService.RouteView")
	defer span.End()

	result, err := s.inner.RouteView(ctx, visitor)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load route view")
	}
	if result.Navigation != nil {
		span.SetAttributes(attribute.String("navigate.to", string(result.Navigation.To)))
	} else {
		span.SetAttributes(attribute.Int64("order.id", result.OrderID))
	}
	return result, nil
}

func (s *Service) StartNavigation(ctx context.Context, visitor sessiondomain.Visitor) error {
	ctx, span := s.tracer.Start(ctx, "DeliveryService.StartNavigation")
	defer span.End()

	if err := s.inner.StartNavigation(ctx, visitor); err != nil {
		return s.handleError(ctx, span, err, "failed to start navigation")
	}
	return nil
}

func (s *Service) MarkArrived(ctx context.Context, visitor sessiondomain.Visitor) (*deliveryports.RouteView, error) {
	ctx, span := s.tracer.Start(ctx, "DeliveryService.MarkArrived")
	defer span.End()

	result, err := s.inner.MarkArrived(ctx, visitor)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to mark arrival")
	}
	s.logInfo(ctx, "courier arrived", slog.Int64("order.id", result.OrderID))
	return result, nil
}

func (s *Service) ConfirmDelivery(ctx context.Context, visitor sessiondomain.Visitor, confirmed bool) (*deliveryports.DeliveryResult, error) {
	ctx, span := s.tracer.Start(ctx, "DeliveryService.ConfirmDelivery", trace.WithAttributes(attribute.Bool("confirmed", confirmed)))
	defer span.End()

	result, err := s.inner.ConfirmDelivery(ctx, visitor, confirmed)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to confirm delivery")
	}
	s.metrics.recordDelivered(ctx)
	s.logInfo(ctx, "delivery completed", slog.Int64("order.id", result.OrderID))
	return result, nil
}

func (s *Service) CallCustomer(ctx context.Context, visitor sessiondomain.Visitor, confirmed bool) (*deliveryports.Dial, error) {
	ctx, span := s.tracer.Start(ctx, "DeliveryService.CallCustomer", trace.WithAttributes(attribute.Bool("confirmed", confirmed)))
	defer span.End()

	result, err := s.inner.CallCustomer(ctx, visitor, confirmed)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to call customer")
	}
	return result, nil
}

func (s *Service) Search(ctx context.Context, visitor sessiondomain.Visitor, query string) error {
	ctx, span := s.tracer.Start(ctx, "DeliveryService.Search")
	defer span.End()

	if err := s.inner.Search(ctx, visitor, query); err != nil {
		return s.handleError(ctx, span, err, "failed to search")
	}
	return nil
}

func (s *Service) GoBack(ctx context.Context, visitor sessiondomain.Visitor) (*view.Navigation, error) {
	ctx, span := s.tracer.Start(ctx, "DeliveryService.GoBack")
	defer span.End()

	result, err := s.inner.GoBack(ctx, visitor)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to leave route view")
	}
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
	deliveries metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	deliveries, _ := m.Int64Counter("delivery.service.completed", metric.WithDescription("Number of deliveries confirmed"))
	return serviceMetrics{deliveries: deliveries}
}

func (m serviceMetrics) recordDelivered(ctx context.Context) {
	if m.deliveries != nil {
		m.deliveries.Add(ctx, 1)
	}
}

var _ deliveryports.Service = (*Service)(nil)
