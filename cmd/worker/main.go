package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"

	"github.com/ghuser/atelier/pkg/app"
	"github.com/ghuser/atelier/pkg/cache"
	"github.com/ghuser/atelier/pkg/config"
	"github.com/ghuser/atelier/pkg/database"
	"github.com/ghuser/atelier/pkg/events"
	"github.com/ghuser/atelier/pkg/logger"
	"github.com/ghuser/atelier/pkg/telemetry"
	"github.com/ghuser/atelier/pkg/workflows"
	cartEvents "github.com/ghuser/atelier/services/cart/domain/events"
	catalogsvcs "github.com/ghuser/atelier/services/catalog/application/services"
	catalogWorkflows "github.com/ghuser/atelier/services/catalog/application/workflows"
	catalogEvents "github.com/ghuser/atelier/services/catalog/domain/events"
	"github.com/ghuser/atelier/services/catalog/infrastructure/persistence/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	ctx := context.Background()

	otelShutdown, _, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer pool.Close()
	log.Info("database pool connected")

	eventBus, err := events.NewEventBus(cfg, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer redisClient.Close() //nolint:errcheck
	log.Info("redis connected")

	temporalClient, err := workflows.NewTemporalClient(ctx, cfg.TemporalHostPort, cfg.TemporalNamespace, log)
	if err != nil {
		log.Error("failed to initialize temporal client", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer temporalClient.Close()

	appConfig := &app.Application{
		Db:             pool,
		Logger:         log,
		EventBus:       eventBus,
		Redis:          redisClient,
		TemporalClient: temporalClient,
	}

	catalogServices := catalogsvcs.New(appConfig, cfg)

	if err := registerSubscribers(ctx, appConfig); err != nil {
		log.Error("failed to register subscribers", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	w := worker.New(temporalClient.Client, catalogWorkflows.TaskQueue, worker.Options{})
	w.RegisterWorkflow(catalogWorkflows.RefreshWorkflow)
	w.RegisterActivity(&catalogWorkflows.RefreshActivities{Catalog: catalogServices.Catalog})
	if err := w.Start(); err != nil {
		log.Error("failed to start temporal worker", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer w.Stop()

	if err := startRefreshCron(ctx, temporalClient); err != nil {
		log.Error("failed to start catalog refresh cron", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	log.Info("catalog refresh cron scheduled", "cron", catalogWorkflows.RefreshCronSchedule)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")

	// EventBus.Close() (via defer) waits up to 30s for in-flight handlers.
	log.Info("worker stopped")
}

// startRefreshCron starts the hourly catalog refresh workflow. The fixed
// workflow ID makes this idempotent: a second worker instance gets
// "already started" and moves on.
func startRefreshCron(ctx context.Context, tc *workflows.TemporalClient) error {
	_, err := tc.Client.ExecuteWorkflow(ctx, client.StartWorkflowOptions{
		ID:           catalogWorkflows.RefreshWorkflowID,
		TaskQueue:    catalogWorkflows.TaskQueue,
		CronSchedule: catalogWorkflows.RefreshCronSchedule,
	}, catalogWorkflows.RefreshWorkflow)
	if err != nil {
		var already *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &already) {
			return nil
		}
		return err
	}
	return nil
}

// registerSubscribers wires all domain event handlers.
// Add new topics here as more services publish events.
func registerSubscribers(ctx context.Context, a *app.Application) error {
	subscriptions := map[string]func(context.Context, *message.Message) error{
		catalogEvents.TopicCatalogRefreshed: handleCatalogRefreshed(a),
		cartEvents.TopicLineAdded:           handleCartActivity(a, "added to cart"),
		cartEvents.TopicLineRemoved:         handleCartActivity(a, "removed from cart"),
	}

	topics := make([]string, 0, len(subscriptions))
	for topic, handler := range subscriptions {
		errCh, err := a.EventBus.Subscribe(ctx, topic, handler)
		if err != nil {
			return err
		}
		topics = append(topics, topic)

		// Drain subscriber errors in background so the channel never blocks.
		go func(topic string) {
			for err := range errCh {
				a.Logger.ErrorContext(ctx, "subscriber error", "topic", topic, "error", err)
			}
		}(topic)
	}

	a.Logger.Info("event subscribers registered", "topics", topics)
	return nil
}

// handleCatalogRefreshed re-warms the product snapshot cache from Postgres.
// Handlers must be idempotent — EventBus retries up to 3× on failure.
// The refresh path already rewrites the cache; this covers the case where
// that write failed and readers would otherwise fall back to Postgres until
// the next refresh.
func handleCatalogRefreshed(a *app.Application) func(context.Context, *message.Message) error {
	repo := postgres.NewProductRepository(a.Db)
	productCache := cache.NewProductCache(a.Redis)
	return func(ctx context.Context, msg *message.Message) error {
		var evt catalogEvents.CatalogRefreshedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return err
		}

		products, err := repo.List(ctx)
		if err != nil {
			return err
		}

		cached := make([]cache.CachedProduct, len(products))
		for i, p := range products {
			cached[i] = cache.CachedProduct{
				ID:               p.ID,
				Name:             p.Name,
				Description:      p.Description,
				ImageURL:         p.ImageURL,
				AdditionalImages: p.AdditionalImages,
				Price:            p.Price,
				Category:         p.Category,
				Collection:       p.Collection,
				IsNew:            p.IsNew,
				SizeStock:        p.SizeStock,
			}
		}
		if err := productCache.Set(ctx, cached); err != nil {
			// Cache warming is best-effort; log but do not fail the handler.
			a.Logger.WarnContext(ctx, "cache warm failed after catalog refresh",
				"product_count", evt.ProductCount, "error", err)
			return nil
		}

		a.Logger.InfoContext(ctx, "product cache warmed",
			"product_count", len(cached), "event_id", evt.EventID)
		return nil
	}
}

// handleCartActivity logs cart line events as merchandising signals.
type cartLineEvent struct {
	ShopperID string `json:"shopper_id"`
	ProductID string `json:"product_id"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}

func handleCartActivity(a *app.Application, action string) func(context.Context, *message.Message) error {
	return func(ctx context.Context, msg *message.Message) error {
		var evt cartLineEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return err
		}
		a.Logger.InfoContext(ctx, action,
			"shopper_id", evt.ShopperID,
			"product_id", evt.ProductID,
			"size", evt.Size,
			"quantity", evt.Quantity,
		)
		return nil
	}
}
