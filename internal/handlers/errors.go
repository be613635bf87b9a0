package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/23himanshusingh/network-inventory-manager/internal/services"
)

// respondError translates service errors into HTTP responses. Business rule
// violations are 400s, missing rows 404s, uniqueness and capacity clashes
// 409s; anything else is a 500.
func respondError(c *fiber.Ctx, err error) error {
	var ruleErr *services.BusinessRuleError
	switch {
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrConflict),
		errors.Is(err, services.ErrCapacityExceeded),
		errors.Is(err, services.ErrPortConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrNotAssigned):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.As(err, &ruleErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ruleErr.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}

// actorID extracts the authenticated user id set by JWTMiddleware. Nil when
// the route is reached without auth context (e.g. in tests).
func actorID(c *fiber.Ctx) *uint {
	if v, ok := c.Locals("user_id").(uint); ok {
		return &v
	}
	return nil
}

// paramID parses a numeric path parameter.
func paramID(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
