package handlers

import (
	"errors"

	applog "merchbase/internal/log"
	"merchbase/internal/services"

	"github.com/gofiber/fiber/v2"
)

// fail maps a service error onto the API's status taxonomy: ValidationError
// 400, NotFound 404, anything else 500 with a details string from the cause.
func fail(c *fiber.Ctx, err error, notFoundMsg, failMsg string) error {
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ve.Error()})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": notFoundMsg})
	default:
		applog.Error(c, "api.error", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   failMsg,
			"details": err.Error(),
		})
	}
}
