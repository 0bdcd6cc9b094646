package webapi

import (
	"github.com/amirasaad/fxcalc/pkg/currency"
	"github.com/amirasaad/fxcalc/pkg/service/conversion"
	"github.com/gofiber/fiber/v2"
)

// GetState returns the session's full converter state, including derived
// per-row values.
func GetState(mgr *conversion.Manager, registry *currency.Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		store, err := sessionStore(c, mgr)
		if store == nil {
			return err
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "State fetched successfully", mapState(store, registry))
	}
}

// RefreshRates reloads the rate table. Failures never surface as HTTP
// errors; the store lands in the offline state and the response carries
// the offline flag plus the as-of date of whatever stale data survived.
func RefreshRates(mgr *conversion.Manager, registry *currency.Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		store, err := sessionStore(c, mgr)
		if store == nil {
			return err
		}
		store.LoadRates(c.Context())
		return SuccessResponseJSON(c, fiber.StatusOK, "Rates refreshed", mapState(store, registry))
	}
}
