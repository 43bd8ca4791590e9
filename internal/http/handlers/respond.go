package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"shopbook/internal/domain"
	"shopbook/internal/services"
)

func currentUser(c *fiber.Ctx) *domain.User {
	u, _ := c.Locals("user").(*domain.User)
	return u
}

func badRequest(c *fiber.Ctx, kind string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": kind})
}

// fail maps service errors to the API's machine-readable error kinds.
// Unknown errors bubble up to the app ErrorHandler as a generic 500.
func fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "NOT_FOUND"})
	case errors.Is(err, services.ErrOutOfStock):
		return badRequest(c, "OUT_OF_STOCK")
	case errors.Is(err, services.ErrExceedsDebt):
		return badRequest(c, "PAYMENT_EXCEEDS_DEBT")
	case errors.Is(err, services.ErrAlreadySettled):
		return badRequest(c, "ALREADY_SETTLED")
	case errors.Is(err, services.ErrNameTaken):
		return badRequest(c, "NAME_TAKEN")
	case errors.Is(err, services.ErrEmailTaken):
		return badRequest(c, "EMAIL_TAKEN")
	case errors.Is(err, services.ErrBadCreds):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "BAD_CREDENTIALS"})
	default:
		return err
	}
}
