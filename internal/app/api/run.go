package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	goredis "github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"gorm.io/gorm"

	dispatchserver "github.com/Apurer/dharai-delivery/go"

	authargon2 "github.com/Apurer/dharai-delivery/internal/domains/auth/adapters/argon2"
	authobs "github.com/Apurer/dharai-delivery/internal/domains/auth/adapters/observability"
	authapp "github.com/Apurer/dharai-delivery/internal/domains/auth/application"
	deliveryobs "github.com/Apurer/dharai-delivery/internal/domains/delivery/adapters/observability"
	deliveryworkflows "github.com/Apurer/dharai-delivery/internal/domains/delivery/adapters/workflows"
	deliveryapp "github.com/Apurer/dharai-delivery/internal/domains/delivery/application"
	deliveryports "github.com/Apurer/dharai-delivery/internal/domains/delivery/ports"
	notifmemory "github.com/Apurer/dharai-delivery/internal/domains/notifications/adapters/memory"
	notifrabbitmq "github.com/Apurer/dharai-delivery/internal/domains/notifications/adapters/rabbitmq"
	notifapp "github.com/Apurer/dharai-delivery/internal/domains/notifications/application"
	notifports "github.com/Apurer/dharai-delivery/internal/domains/notifications/ports"
	ordersmemory "github.com/Apurer/dharai-delivery/internal/domains/orders/adapters/memory"
	ordersobs "github.com/Apurer/dharai-delivery/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/Apurer/dharai-delivery/internal/domains/orders/adapters/persistence/postgres"
	ordersapp "github.com/Apurer/dharai-delivery/internal/domains/orders/application"
	ordersports "github.com/Apurer/dharai-delivery/internal/domains/orders/ports"
	sessionmemory "github.com/Apurer/dharai-delivery/internal/domains/session/adapters/memory"
	sessionpostgres "github.com/Apurer/dharai-delivery/internal/domains/session/adapters/persistence/postgres"
	sessionredis "github.com/Apurer/dharai-delivery/internal/domains/session/adapters/redis"
	sessionapp "github.com/Apurer/dharai-delivery/internal/domains/session/application"
	sessionports "github.com/Apurer/dharai-delivery/internal/domains/session/ports"
	"github.com/Apurer/dharai-delivery/internal/platform/clientid"
	"github.com/Apurer/dharai-delivery/internal/platform/migrations"
	platformobservability "github.com/Apurer/dharai-delivery/internal/platform/observability"
	platformpostgres "github.com/Apurer/dharai-delivery/internal/platform/postgres"
	platformrabbitmq "github.com/Apurer/dharai-delivery/internal/platform/rabbitmq"
	platformredis "github.com/Apurer/dharai-delivery/internal/platform/redis"
)

// Run boots the dispatch HTTP API with observability, stores, and workflows wired.
func Run(ctx context.Context) error {
	const serviceName = "dharai-dispatch-api"
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	db, cleanupDB := platformpostgres.ConnectFromEnv(ctx, logger)
	defer cleanupDB()
	if db != nil {
		if err := migrations.Run(db); err != nil {
			return fmt.Errorf("failed to migrate schema: %w", err)
		}
	}
	redisClient, cleanupRedis := platformredis.ConnectFromEnv(ctx, logger)
	defer cleanupRedis()
	broker, cleanupBroker := platformrabbitmq.ConnectFromEnv(logger)
	defer cleanupBroker()

	orderRepo, err := buildOrderRepository(ctx, db, logger)
	if err != nil {
		return err
	}
	sessions := sessionapp.NewSessions(buildSessionStore(db, cfg, logger))
	handoff := ordersapp.NewHandoff(buildTransferStore(redisClient, cfg, logger))

	feed := notifmemory.NewFeed()
	sinks := []notifports.Sink{feed}
	if broker != nil {
		sinks = append(sinks, notifrabbitmq.NewPublisher(broker))
	}
	notifier := notifapp.NewDispatcher(sinks, notifapp.WithLogger(logger))

	verifier, err := authargon2.NewVerifier(cfg.DemoPassword)
	if err != nil {
		return fmt.Errorf("failed to hash demo password: %w", err)
	}
	authService := authobs.New(
		authapp.NewService(sessions, verifier, authapp.WithLatency(cfg.LoginLatency)),
		authobs.WithLogger(logger),
		authobs.WithTracer(instruments.Tracer("internal.auth.application")),
		authobs.WithMeter(instruments.Meter("internal.auth.application")),
	)
	orderService := ordersobs.New(
		ordersapp.NewService(orderRepo, sessions, handoff, notifier),
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)

	var completion deliveryports.CompletionOrchestrator = deliveryworkflows.NewInlineCompletion(orderService, handoff)
	if db == nil || redisClient == nil {
		logger.Info("delivery completion runs inline, worker needs shared postgres and redis")
	} else if temporalClient, err := connectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, running delivery completion inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		completion = deliveryworkflows.NewTemporalCompletion(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}
	deliveryService := deliveryobs.New(
		deliveryapp.NewService(sessions, orderRepo, handoff, completion, notifier),
		deliveryobs.WithLogger(logger),
		deliveryobs.WithTracer(instruments.Tracer("internal.delivery.application")),
		deliveryobs.WithMeter(instruments.Meter("internal.delivery.application")),
	)

	issuer, err := clientid.NewIssuer(cfg.ClientTokenSecret, cfg.SessionTTL, cfg.TransferTTL)
	if err != nil {
		return fmt.Errorf("invalid client token settings: %w", err)
	}
	handlers := dispatchserver.ApiHandleFunctions{
		Identity:     dispatchserver.IdentityMiddleware(issuer, cfg.Production()),
		AuthAPI:      dispatchserver.NewAuthAPI(authService),
		DashboardAPI: dispatchserver.NewDashboardAPI(orderService),
		RouteAPI:     dispatchserver.NewRouteAPI(deliveryService),
		ToastAPI:     dispatchserver.NewToastAPI(feed),
	}
	router := dispatchserver.NewRouter(handlers,
		otelgin.Middleware(serviceName),
		cors.New(cors.Config{
			AllowOrigins:     cfg.AllowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
	)

	addr := ":" + cfg.Port
	logger.Info("Dispatch API listening", slog.String("addr", addr), slog.String("environment", cfg.Environment))
	if err := router.Run(addr); err != nil {
		logger.Error("Dispatch API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

func buildOrderRepository(ctx context.Context, db *gorm.DB, logger *slog.Logger) (ordersports.Repository, error) {
	if db == nil {
		logger.Info("order registry configured in memory")
		return ordersmemory.NewSeededRepository(), nil
	}
	repo := orderspostgres.NewRepository(db)
	if err := ordersapp.EnsureSeeded(ctx, repo); err != nil {
		return nil, fmt.Errorf("failed to seed orders: %w", err)
	}
	logger.Info("order registry configured with postgres")
	return repo, nil
}

func buildSessionStore(db *gorm.DB, cfg Config, logger *slog.Logger) sessionports.SessionStore {
	if db == nil {
		logger.Warn("session store configured in memory, sign-ins end with the process")
		return sessionmemory.NewStore()
	}
	return sessionpostgres.NewSessionStore(db, cfg.SessionTTL)
}

func buildTransferStore(redisClient *goredis.Client, cfg Config, logger *slog.Logger) sessionports.TransferStore {
	if redisClient == nil {
		logger.Info("transfer store configured in memory")
		return sessionmemory.NewStore()
	}
	return sessionredis.NewTransferStore(redisClient, cfg.TransferTTL)
}

func connectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(temporalotel.TracerOptions{
		Tracer: instruments.Tracer("temporal-client"),
	})
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(instruments.Logger),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}
