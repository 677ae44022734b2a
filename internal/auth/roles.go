package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/jcdoncaster/shift-management-bot/pkg/util/errorutil"
)

// RequireAdmin ensures the authenticated principal carries the admin role.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.Role != RoleAdmin {
			return apperrors.NewForbidden("admin role required")
		}
		return c.Next()
	}
}
