package handlers

import (
	applog "merchbase/internal/log"
	"merchbase/internal/services"

	"github.com/gofiber/fiber/v2"
)

// RequireAuth gates mutating routes: no valid unexpired session, no access.
func RequireAuth(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized - No session"})
		}
		sess, err := auth.Current(sid)
		if err != nil || sess == nil {
			applog.Security(c, "access.denied", map[string]any{"sid": sid})
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized - No session"})
		}
		c.Locals("session", sess)
		return c.Next()
	}
}
