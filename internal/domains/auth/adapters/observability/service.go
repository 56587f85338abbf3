package observability

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	authapp "github.com/Apurer/dharai-delivery/internal/domains/auth/application"
	authdomain "github.com/Apurer/dharai-delivery/internal/domains/auth/domain"
	authports "github.com/Apurer/dharai-delivery/internal/domains/auth/ports"
	sessiondomain "github.com/Apurer/dharai-delivery/internal/domains/session/domain"
)

const tracerName = "github.com/Apurer/dharai-delivery/internal/domains/auth/adapters/observability/service"

// Service decorates the Auth Gate with tracing, logging, and metrics.
type Service struct {
	inner   authports.Service
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

// New wraps the core auth service.
func New(inner authports.Service, opts ...Option) authports.Service {
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

func (s *Service) LoginView(ctx context.Context, visitor sessiondomain.Visitor) (*authports.LoginView, error) {
	ctx, span := s.tracer.Start(ctx, "AuthService.LoginView")
	defer span.End()

	result, err := s.inner.LoginView(ctx, visitor)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load login view")
	}
	span.SetAttributes(attribute.Bool("login.prefilled", result.RememberMe))
	return result, nil
}

func (s *Service) CheckEmail(ctx context.Context, email string) authports.EmailCheck {
	ctx, span := s.tracer.Start(ctx, "AuthService.CheckEmail")
	defer span.End()

	result := s.inner.CheckEmail(ctx, email)
	span.SetAttributes(attribute.Bool("email.valid", result.Valid), attribute.Bool("email.plausible", result.Plausible))
	return result
}

func (s *Service) SubmitCredentials(ctx context.Context, creds authdomain.Credentials) (*sessiondomain.Record, error) {
	ctx, span := s.tracer.Start(ctx, "AuthService.SubmitCredentials")
	defer span.End()

	result, err := s.inner.SubmitCredentials(ctx, creds)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "credential check failed")
	}
	return result, nil
}

func (s *Service) Login(ctx context.Context, visitor sessiondomain.Visitor, creds authdomain.Credentials) (*authports.LoginResult, error) {
	ctx, span := s.tracer.Start(ctx, "AuthService.Login",
		trace.WithAttributes(attribute.Bool("login.remember_me", creds.RememberMe)))
	defer span.End()

	s.logInfo(ctx, "login submitted", slog.String("client.id", visitor.ClientID))
	result, err := s.inner.Login(ctx, visitor, creds)
	if err != nil {
		s.metrics.recordFailure(ctx, failureReason(err))
		if errors.Is(err, authapp.ErrSuperseded) {
			s.logInfo(ctx, "login superseded", slog.String("client.id", visitor.ClientID))
			return nil, err
		}
		return nil, s.handleError(ctx, span, err, "login failed", slog.String("client.id", visitor.ClientID))
	}
	s.metrics.recordLogin(ctx, creds.RememberMe)
	s.logInfo(ctx, "login succeeded", slog.String("client.id", visitor.ClientID))
	return result, nil
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, authapp.ErrInvalidInput):
		return "validation"
	case errors.Is(err, authapp.ErrAuthentication):
		return "credentials"
	case errors.Is(err, authapp.ErrSuperseded):
		return "superseded"
	default:
		return "internal"
	}
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
	logins        metric.Int64Counter
	loginFailures metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	logins, _ := m.Int64Counter("auth.service.logins", metric.WithDescription("Number of successful logins"))
	failures, _ := m.Int64Counter("auth.service.login_failures", metric.WithDescription("Number of rejected login submissions"))
	return serviceMetrics{logins: logins, loginFailures: failures}
}

func (m serviceMetrics) recordLogin(ctx context.Context, rememberMe bool) {
	if m.logins != nil {
		m.logins.Add(ctx, 1, metric.WithAttributes(attribute.Bool("login.remember_me", rememberMe)))
	}
}

func (m serviceMetrics) recordFailure(ctx context.Context, reason string) {
	if m.loginFailures != nil {
		m.loginFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
	}
}

var _ authports.Service = (*Service)(nil)
