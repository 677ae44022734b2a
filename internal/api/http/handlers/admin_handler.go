package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jcdoncaster/shift-management-bot/internal/api/dto"
	"github.com/jcdoncaster/shift-management-bot/internal/auth"
	"github.com/jcdoncaster/shift-management-bot/internal/config"
	"github.com/jcdoncaster/shift-management-bot/internal/service"
	apperrors "github.com/jcdoncaster/shift-management-bot/pkg/util/errorutil"
)

// AdminHandler exposes the operator login and the aggregate stats read.
type AdminHandler struct {
	engine *service.ShiftEngine
	tokens *auth.TokenManager
	cfg    config.AuthConfig
}

// NewAdminHandler constructs handler.
func NewAdminHandler(engine *service.ShiftEngine, tokens *auth.TokenManager, cfg config.AuthConfig) *AdminHandler {
	return &AdminHandler{engine: engine, tokens: tokens, cfg: cfg}
}

// Login handles POST /auth/admin/login.
func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var req dto.AdminLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Password == "" {
		return apperrors.NewValidationError("password required", nil)
	}
	if h.cfg.AdminPasswordHash == "" {
		return apperrors.NewUnauthorized("admin login not configured")
	}
	if err := auth.ComparePassword(h.cfg.AdminPasswordHash, req.Password); err != nil {
		return apperrors.NewUnauthorized("invalid credentials")
	}

	token, expiresAt, err := h.tokens.GenerateToken("admin", auth.RoleAdmin)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	return c.JSON(fiber.Map{"data": dto.AuthResponse{Token: token, ExpiresAt: expiresAt}})
}

// Stats handles GET /admin/stats.
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	stats := h.engine.Stats()
	return c.JSON(fiber.Map{"data": dto.StatsResponse{
		StaffCount:  stats.StaffCount,
		TotalShifts: stats.TotalShifts,
		ActiveCount: stats.ActiveCount,
	}})
}
