package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jcdoncaster/shift-management-bot/internal/api/http/handlers"
	"github.com/jcdoncaster/shift-management-bot/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Staff          *handlers.StaffHandler
	Shifts         *handlers.ShiftsHandler
	Admin          *handlers.AdminHandler
	Commands       *handlers.CommandsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/staff/register", cfg.Staff.Register)
	app.Get("/staff/:identity/status", cfg.Staff.Status)
	app.Get("/staff/:identity/shifts", cfg.Staff.History)

	app.Post("/shifts/clockin", cfg.Shifts.ClockIn)
	app.Post("/shifts/clockout", cfg.Shifts.ClockOut)

	app.Post("/commands", cfg.Commands.Dispatch)

	app.Post("/auth/admin/login", cfg.Admin.Login)

	protected := app.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireAdmin())
	protected.Get("/stats", cfg.Admin.Stats)
}
