package webapi

import (
	"time"

	"github.com/amirasaad/fxcalc/pkg/currency"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Health returns a liveness handler reporting uptime.
func Health(startedAt time.Time) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return SuccessResponseJSON(c, fiber.StatusOK, "OK", fiber.Map{
			"status": "ok",
			"uptime": time.Since(startedAt).String(),
		})
	}
}

// CreateSession mints a fresh session id. The client echoes it back in the
// X-Session-ID header on every subsequent request.
func CreateSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return SuccessResponseJSON(c, fiber.StatusCreated, "Session created", sessionResponse{
			SessionID: uuid.NewString(),
		})
	}
}

// SupportedCurrencies lists registry metadata for the selector sheet.
func SupportedCurrencies(registry *currency.Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return SuccessResponseJSON(c, fiber.StatusOK, "Supported currencies fetched successfully", registry.All())
	}
}
