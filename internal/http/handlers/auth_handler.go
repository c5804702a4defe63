package handlers

import (
	"errors"
	"time"

	"merchbase/internal/domain"
	applog "merchbase/internal/log"
	"merchbase/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AuthHandler struct {
	Auth *services.AuthService
}

func (h *AuthHandler) ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies("sid")
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     "sid",
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Secure:   false, // set true behind HTTPS
			MaxAge:   int(h.Auth.Cfg.SessionTTL / time.Second),
		})
	}
	return sid
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&body); err != nil || body.Username == "" || body.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Username and password required"})
	}

	sid := h.ensureSID(c)
	sess, err := h.Auth.Login(sid, body.Username, body.Password)
	if errors.Is(err, services.ErrBadCreds) {
		applog.Security(c, "auth.login.fail", map[string]any{"username": body.Username})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid credentials"})
	}
	if err != nil {
		applog.Error(c, "auth.login.error", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server error", "details": err.Error()})
	}

	applog.Audit(c, "auth.login.success", map[string]any{"username": sess.Username})
	return c.JSON(fiber.Map{"success": true, "username": sess.Username})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if sid := c.Cookies("sid"); sid != "" {
		if err := h.Auth.Logout(sid); err != nil {
			applog.Error(c, "auth.logout.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Logout failed"})
		}
	}
	// Expire cookie
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
	applog.Audit(c, "auth.logout", nil)
	return c.JSON(fiber.Map{"success": true})
}

// Me reports the authenticated principal. RequireAuth put the session in locals.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	sess := c.Locals("session").(*domain.Session)
	return c.JSON(fiber.Map{"username": sess.Username, "userId": sess.UserID})
}
