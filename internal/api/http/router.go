package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vibecatcher/event-service/internal/api/http/handlers"
	"github.com/vibecatcher/event-service/internal/auth"
	"github.com/vibecatcher/event-service/internal/realtime"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Events         *handlers.EventsHandler
	Reviews        *handlers.ReviewsHandler
	Registrations  *handlers.RegistrationsHandler
	Notifications  *handlers.NotificationsHandler
	Analytics      *handlers.AnalyticsHandler
	Chat           *handlers.ChatHandler
	Gateway        *realtime.Gateway
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/api/health", cfg.Health.Live)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, auth.RequireAuth(), cfg.Users.Me)

	events := app.Group("/events")
	events.Get("/", cfg.Events.List)
	events.Get("/:id", cfg.Events.Get)
	events.Get("/:id/reviews", cfg.Reviews.ListByEvent)
	events.Post("/:id/reviews", cfg.AuthMiddleware.Handle, auth.RequireAuth(), cfg.Reviews.Create)

	adminEvents := events.Group("", cfg.AuthMiddleware.Handle, auth.RequireAdmin())
	adminEvents.Post("/", cfg.Events.Create)
	adminEvents.Put("/:id", cfg.Events.Update)
	adminEvents.Delete("/:id", cfg.Events.Delete)
	adminEvents.Get("/:id/registrations", cfg.Registrations.ListForEvent)

	reviews := app.Group("/reviews", cfg.AuthMiddleware.Handle, auth.RequireAdmin())
	reviews.Post("/:id/respond", cfg.Reviews.Respond)
	reviews.Delete("/:id", cfg.Reviews.Delete)

	registrations := app.Group("/registrations")
	registrations.Post("/", cfg.AuthMiddleware.HandleOptional, cfg.Registrations.Create)
	registrations.Get("/mine", cfg.AuthMiddleware.Handle, auth.RequireAuth(), cfg.Registrations.Mine)
	registrations.Post("/:id/check-in", cfg.AuthMiddleware.Handle, auth.RequireAdmin(), cfg.Registrations.CheckIn)

	notifications := app.Group("/notifications", cfg.AuthMiddleware.Handle, auth.RequireAuth())
	notifications.Get("/", cfg.Notifications.List)
	notifications.Get("/unread-count", cfg.Notifications.UnreadCount)
	notifications.Post("/read-all", cfg.Notifications.MarkAllRead)
	notifications.Post("/:id/read", cfg.Notifications.MarkRead)

	app.Get("/analytics", cfg.AuthMiddleware.Handle, auth.RequireAdmin(), cfg.Analytics.Report)

	app.Get("/api/chat", cfg.Chat.Get)
	app.Post("/api/chat", cfg.Chat.Post)
	app.Post("/api/sentiment", cfg.Chat.Sentiment)

	app.Use("/ws", realtime.UpgradeRequired())
	app.Get("/ws", cfg.Gateway.Handler())
}
