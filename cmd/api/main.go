package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/vibecatcher/event-service/internal/ai"
	httptransport "github.com/vibecatcher/event-service/internal/api/http"
	"github.com/vibecatcher/event-service/internal/api/http/handlers"
	"github.com/vibecatcher/event-service/internal/auth"
	"github.com/vibecatcher/event-service/internal/config"
	"github.com/vibecatcher/event-service/internal/events"
	"github.com/vibecatcher/event-service/internal/observability"
	"github.com/vibecatcher/event-service/internal/persistence"
	"github.com/vibecatcher/event-service/internal/realtime"
	"github.com/vibecatcher/event-service/internal/repository"
	"github.com/vibecatcher/event-service/internal/service"
	"github.com/vibecatcher/event-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	eventRepo := repository.NewEventRepository(pool)
	reviewRepo := repository.NewReviewRepository(pool)
	registrationRepo := repository.NewRegistrationRepository(pool)
	notificationRepo := repository.NewNotificationRepository(pool)
	analyticsRepo := repository.NewAnalyticsRepository(pool)

	authService := service.NewAuthService(*cfg, userRepo)
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)

	registry := realtime.NewRegistry(logger)
	gateway := realtime.NewGateway(registry, authService.TokenManager(), logger)

	eventService := service.NewEventService(eventRepo, redis, cfg.Cache.EventListTTLSeconds, dispatcher, logger)
	reviewService := service.NewReviewService(reviewRepo, eventRepo, eventService, dispatcher)
	registrationService := service.NewRegistrationService(registrationRepo, eventRepo, dispatcher)
	notificationService := service.NewNotificationService(notificationRepo, registry, dispatcher, logger)
	analyticsService := service.NewAnalyticsService(analyticsRepo)

	worker.StartNotificationWorker(notificationService)

	relay := ai.NewRelay(newProvider(cfg.AI, logger), cfg.AI.MaxTokens, cfg.AI.RequestTimeout(), logger)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Users:          handlers.NewUsersHandler(authService),
		Events:         handlers.NewEventsHandler(eventService),
		Reviews:        handlers.NewReviewsHandler(reviewService),
		Registrations:  handlers.NewRegistrationsHandler(registrationService),
		Notifications:  handlers.NewNotificationsHandler(notificationService),
		Analytics:      handlers.NewAnalyticsHandler(analyticsService),
		Chat:           handlers.NewChatHandler(relay),
		Gateway:        gateway,
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

// newProvider selects the completion backend. A missing key returns nil,
// which degrades the chat endpoint to its fallback message.
func newProvider(cfg config.AIConfig, logger *zap.Logger) ai.CompletionProvider {
	switch cfg.Provider {
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			logger.Warn("OPENAI_API_KEY not set, assistant disabled")
			return nil
		}
		return ai.NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.Model)
	default:
		if cfg.AnthropicAPIKey == "" {
			logger.Warn("ANTHROPIC_API_KEY not set, assistant disabled")
			return nil
		}
		return ai.NewAnthropicProvider(cfg.AnthropicAPIKey, cfg.Model)
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
