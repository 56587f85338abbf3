package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	notifports "github.com/Apurer/dharai-delivery/internal/domains/notifications/ports"
	ordersobs "github.com/Apurer/dharai-delivery/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/Apurer/dharai-delivery/internal/domains/orders/adapters/persistence/postgres"
	ordersapp "github.com/Apurer/dharai-delivery/internal/domains/orders/application"
	sessionpostgres "github.com/Apurer/dharai-delivery/internal/domains/session/adapters/persistence/postgres"
	sessionredis "github.com/Apurer/dharai-delivery/internal/domains/session/adapters/redis"
	sessionapp "github.com/Apurer/dharai-delivery/internal/domains/session/application"
	platformobservability "github.com/Apurer/dharai-delivery/internal/platform/observability"
	platformpostgres "github.com/Apurer/dharai-delivery/internal/platform/postgres"
	platformredis "github.com/Apurer/dharai-delivery/internal/platform/redis"
	deliveryactivities "github.com/Apurer/dharai-delivery/internal/platform/temporal/activities/delivery"
	deliveryworkflows "github.com/Apurer/dharai-delivery/internal/platform/temporal/workflows/delivery"
)

func main() {
	_ = godotenv.Load()
	ctx := context.Background()
	const serviceName = "dharai-delivery-worker"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	// The worker shares stores with the API; in-memory fallbacks would diverge.
	db, cleanupDB := platformpostgres.ConnectFromEnv(ctx, logger)
	defer cleanupDB()
	redisClient, cleanupRedis := platformredis.ConnectFromEnv(ctx, logger)
	defer cleanupRedis()
	if db == nil || redisClient == nil {
		logger.Error("worker requires POSTGRES_DSN and REDIS_URL")
		os.Exit(1)
	}

	handoff := ordersapp.NewHandoff(sessionredis.NewTransferStore(redisClient, sessionredis.DefaultTransferTTL))
	sessions := sessionapp.NewSessions(sessionpostgres.NewSessionStore(db, sessionpostgres.DefaultSessionTTL))
	orderService := ordersobs.New(
		ordersapp.NewService(orderspostgres.NewRepository(db), sessions, handoff, notifports.NoopNotifier),
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)
	completionActivities := deliveryactivities.NewActivities(orderService, handoff)

	tracingInterceptor, err := temporalotel.NewTracingInterceptor(temporalotel.TracerOptions{Tracer: instruments.Tracer("temporal-worker")})
	if err != nil {
		logger.Error("failed to configure Temporal tracing interceptor", slog.String("error", err.Error()))
		os.Exit(1)
	}
	clientOptions := client.Options{
		HostPort:  envOrDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		Namespace: envOrDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	clientOptions.Interceptors = append(clientOptions.Interceptors, tracingInterceptor)
	temporalClient, err := client.Dial(clientOptions)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, deliveryworkflows.DeliveryCompletionTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(deliveryworkflows.DeliveryCompletionWorkflow, workflow.RegisterOptions{Name: deliveryworkflows.DeliveryCompletionWorkflowName})
	w.RegisterActivityWithOptions(completionActivities.MarkOrderDelivered, activity.RegisterOptions{Name: deliveryactivities.MarkOrderDeliveredActivityName})
	w.RegisterActivityWithOptions(completionActivities.ClearHandoff, activity.RegisterOptions{Name: deliveryactivities.ClearHandoffActivityName})

	logger.Info("worker listening", slog.String("taskQueue", deliveryworkflows.DeliveryCompletionTaskQueue), slog.String("namespace", clientOptions.Namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
