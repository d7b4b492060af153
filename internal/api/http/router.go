package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Sidnaik04/YT-Assistant/internal/api/http/handlers"
	"github.com/Sidnaik04/YT-Assistant/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Videos         *handlers.VideosHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/refresh", cfg.Auth.Refresh)

	protected := authGroup.Group("", cfg.AuthMiddleware.Handle)
	protected.Get("/me", cfg.Auth.Me)
	protected.Post("/logout", cfg.Auth.Logout)

	app.Post("/download", cfg.AuthMiddleware.Handle, cfg.Videos.Download)
	app.Post("/transcript", cfg.AuthMiddleware.Handle, cfg.Videos.Transcript)
	app.Post("/summarize", cfg.AuthMiddleware.Handle, cfg.Videos.Summarize)
}
