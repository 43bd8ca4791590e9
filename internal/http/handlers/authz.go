package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	applog "shopbook/internal/log"
	"shopbook/internal/services"
)

// RequireUser resolves the bearer token and attaches the owner to the
// request context. Every core route sits behind it.
func RequireUser(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "UNAUTHORIZED"})
		}
		u, err := auth.CurrentUser(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			applog.Security(c, "auth.token.reject", nil)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "UNAUTHORIZED"})
		}
		c.Locals("user", u)
		return c.Next()
	}
}
