package webapi

import (
	"github.com/amirasaad/fxcalc/pkg/currency"
	"github.com/amirasaad/fxcalc/pkg/service/conversion"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// SetBase selects the row with the given code as the base currency,
// converting the entered amount into the new base when rates allow.
func SetBase(mgr *conversion.Manager, registry *currency.Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		store, err := sessionStore(c, mgr)
		if store == nil {
			return err
		}
		req, err := BindAndValidate[codeRequest](c)
		if req == nil {
			return err
		}
		store.SetBaseCurrency(req.Code)
		return SuccessResponseJSON(c, fiber.StatusOK, "Base currency set", mapState(store, registry))
	}
}

// AddCurrency appends a row for the given code; a duplicate code is a
// silent no-op.
func AddCurrency(mgr *conversion.Manager, registry *currency.Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		store, err := sessionStore(c, mgr)
		if store == nil {
			return err
		}
		req, err := BindAndValidate[codeRequest](c)
		if req == nil {
			return err
		}
		store.AddCurrency(req.Code)
		return SuccessResponseJSON(c, fiber.StatusCreated, "Currency added", mapState(store, registry))
	}
}

// RemoveCurrency deletes the row with the given id; removing the last row
// is a silent no-op.
func RemoveCurrency(mgr *conversion.Manager, registry *currency.Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		store, err := sessionStore(c, mgr)
		if store == nil {
			return err
		}
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid row id", "the id path parameter must be a UUID")
		}
		store.RemoveCurrency(id)
		return SuccessResponseJSON(c, fiber.StatusOK, "Currency removed", mapState(store, registry))
	}
}

// ChangeCurrency renames the row with the given id to a new code.
func ChangeCurrency(mgr *conversion.Manager, registry *currency.Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		store, err := sessionStore(c, mgr)
		if store == nil {
			return err
		}
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid row id", "the id path parameter must be a UUID")
		}
		req, err := BindAndValidate[codeRequest](c)
		if req == nil {
			return err
		}
		store.ChangeCurrency(id, req.Code)
		return SuccessResponseJSON(c, fiber.StatusOK, "Currency changed", mapState(store, registry))
	}
}

// ReorderCurrencies moves a row between display positions.
func ReorderCurrencies(mgr *conversion.Manager, registry *currency.Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		store, err := sessionStore(c, mgr)
		if store == nil {
			return err
		}
		req, err := BindAndValidate[reorderRequest](c)
		if req == nil {
			return err
		}
		store.Reorder(*req.From, *req.To)
		return SuccessResponseJSON(c, fiber.StatusOK, "Currencies reordered", mapState(store, registry))
	}
}

// SwapWithBase exchanges the first row with the base row.
func SwapWithBase(mgr *conversion.Manager, registry *currency.Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		store, err := sessionStore(c, mgr)
		if store == nil {
			return err
		}
		store.SwapWithBase()
		return SuccessResponseJSON(c, fiber.StatusOK, "Swapped with base", mapState(store, registry))
	}
}
