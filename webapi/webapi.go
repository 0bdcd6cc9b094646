// Package webapi provides the HTTP surface of the converter: session
// minting, keypad input, currency row management, and rate refresh.
package webapi

import (
	"log/slog"
	"strings"
	"time"

	"github.com/amirasaad/fxcalc/pkg/config"
	"github.com/amirasaad/fxcalc/pkg/currency"
	"github.com/amirasaad/fxcalc/pkg/service/conversion"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

// HeaderSessionID carries the client's session identity on every request.
const HeaderSessionID = "X-Session-ID"

// New builds the Fiber app with all middleware and routes.
func New(cfg *config.App, mgr *conversion.Manager, registry *currency.Registry, logger *slog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			logger.Error("unhandled error", "path", c.Path(), "error", err)
			return ErrorResponseJSON(c, fiber.StatusInternalServerError, "Internal Server Error", err)
		},
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New())

	// Rate limiting keyed on the forwarded client IP when behind a proxy.
	app.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimit.MaxRequests,
		Expiration: cfg.RateLimit.Window,
		KeyGenerator: func(c *fiber.Ctx) string {
			if forwardedFor := c.Get("X-Forwarded-For"); forwardedFor != "" {
				if commaIndex := strings.Index(forwardedFor, ","); commaIndex != -1 {
					return strings.TrimSpace(forwardedFor[:commaIndex])
				}
				return strings.TrimSpace(forwardedFor)
			}
			if realIP := c.Get("X-Real-IP"); realIP != "" {
				return realIP
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return ErrorResponseJSON(c, fiber.StatusTooManyRequests, "Too Many Requests", "rate limit exceeded")
		},
	}))

	startedAt := time.Now()
	api := app.Group("/api")

	api.Get("/health", Health(startedAt))
	api.Post("/sessions", CreateSession())
	api.Get("/currencies/supported", SupportedCurrencies(registry))

	api.Get("/state", GetState(mgr, registry))
	api.Post("/rates/refresh", RefreshRates(mgr, registry))

	api.Post("/input/digits", PressDigit(mgr, registry))
	api.Post("/input/operators", PressOperator(mgr, registry))
	api.Post("/input/backspace", PressBackspace(mgr, registry))
	api.Post("/input/clear", PressClear(mgr, registry))

	api.Put("/base", SetBase(mgr, registry))
	api.Post("/currencies", AddCurrency(mgr, registry))
	api.Delete("/currencies/:id", RemoveCurrency(mgr, registry))
	api.Put("/currencies/:id", ChangeCurrency(mgr, registry))
	api.Post("/currencies/reorder", ReorderCurrencies(mgr, registry))
	api.Post("/currencies/swap", SwapWithBase(mgr, registry))

	return app
}

// sessionStore resolves the request's session store from the X-Session-ID
// header. A missing or malformed id is the only session-related failure
// surfaced to the client.
func sessionStore(c *fiber.Ctx, mgr *conversion.Manager) (*conversion.Store, error) {
	sid := c.Get(HeaderSessionID)
	if sid == "" {
		return nil, ErrorResponseJSON(c, fiber.StatusBadRequest, "Missing session", "the "+HeaderSessionID+" header is required")
	}
	if _, err := uuid.Parse(sid); err != nil {
		return nil, ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid session", "the "+HeaderSessionID+" header must be a UUID")
	}
	return mgr.GetOrCreate(c.Context(), sid), nil
}
