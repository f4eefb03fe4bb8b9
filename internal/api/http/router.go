package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/spec-kit/celebration-service/internal/api/http/handlers"
	"github.com/spec-kit/celebration-service/internal/auth"
	"github.com/spec-kit/celebration-service/internal/domain"
	"github.com/spec-kit/celebration-service/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Staff          *handlers.StaffHandler
	Customers      *handlers.CustomersHandler
	Tasks          *handlers.TasksHandler
	Stream         *handlers.StreamHandler
	AuthMiddleware *auth.AuthMiddleware
	Metrics        *observability.Metrics
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if reg := cfg.Metrics.Registry(); reg != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	}

	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/logout", cfg.AuthMiddleware.Handle, cfg.Auth.Logout)
	authGroup.Get("/session", cfg.AuthMiddleware.Handle, cfg.Auth.Session)

	admin := app.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleAdmin))
	admin.Get("/staff", cfg.Staff.List)
	admin.Post("/staff", cfg.Staff.Create)
	admin.Put("/staff/:id", cfg.Staff.Update)
	admin.Delete("/staff/:id", cfg.Staff.Delete)
	admin.Get("/customers", cfg.Customers.List)
	admin.Post("/customers", cfg.Customers.Create)
	admin.Put("/customers/:id", cfg.Customers.Update)
	admin.Delete("/customers/:id", cfg.Customers.Delete)
	admin.Post("/customers/:id/milestones/:milestone/complete", cfg.Tasks.Complete)
	admin.Get("/alerts", cfg.Tasks.Alerts)
	admin.Get("/stats", cfg.Tasks.Stats)
	admin.Get("/stream", cfg.Stream.Admin)

	staff := app.Group("/staff", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleStaff))
	staff.Get("/tasks", cfg.Tasks.Tasks)
	staff.Get("/customers", cfg.Customers.List)
	staff.Post("/customers/:id/milestones/:milestone/complete", cfg.Tasks.Complete)
	staff.Post("/customers/:id/wish", cfg.Tasks.Wish)
	staff.Get("/stream", cfg.Stream.Staff)
}
