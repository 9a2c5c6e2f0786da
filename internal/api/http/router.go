package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/medlegalmatch/auth-service/internal/api/http/handlers"
	"github.com/medlegalmatch/auth-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/api/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/password/reset", cfg.Auth.PasswordReset)

	authGroup.Get("/me", cfg.AuthMiddleware.Handle, cfg.Auth.Me)
}
