package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/tenant-admin/internal/api/http/handlers"
	"github.com/spec-kit/tenant-admin/internal/auth"
	"github.com/spec-kit/tenant-admin/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Properties     *handlers.PropertiesHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	v1 := app.Group("/api/v1")

	authGroup := v1.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/refresh", cfg.Auth.Refresh)

	protected := authGroup.Group("", cfg.AuthMiddleware.Handle)
	protected.Post("/switch-tenant", cfg.Auth.SwitchTenant)
	protected.Get("/me", cfg.Auth.Me)
	protected.Post("/logout", cfg.Auth.Logout)

	users := v1.Group("/users", cfg.AuthMiddleware.Handle)
	users.Get("/", cfg.Users.List)
	users.Post("/", auth.RequireRole(domain.RoleAdmin), cfg.Users.Create)
	users.Get("/:id", cfg.Users.Get)
	users.Post("/:id/reset-password", auth.RequireRole(domain.RoleAdmin), cfg.Users.ResetPassword)
	users.Delete("/:id", auth.RequireRole(domain.RoleAdmin), cfg.Users.Delete)

	properties := v1.Group("/properties", cfg.AuthMiddleware.Handle)
	properties.Get("/", cfg.Properties.List)
	properties.Post("/", auth.RequireRole(domain.RoleAdmin), cfg.Properties.Create)
	properties.Delete("/:id", auth.RequireRole(domain.RoleAdmin), cfg.Properties.Delete)
}
