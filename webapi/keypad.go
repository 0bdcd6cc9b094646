package webapi

import (
	"unicode/utf8"

	"github.com/amirasaad/fxcalc/pkg/currency"
	"github.com/amirasaad/fxcalc/pkg/service/conversion"
	"github.com/gofiber/fiber/v2"
)

// PressDigit appends a digit or decimal point to the session's input.
// Keystrokes the grammar rejects are dropped silently; the response always
// reflects the resulting state.
func PressDigit(mgr *conversion.Manager, registry *currency.Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		store, err := sessionStore(c, mgr)
		if store == nil {
			return err
		}
		req, err := BindAndValidate[digitRequest](c)
		if req == nil {
			return err
		}
		r, _ := utf8.DecodeRuneInString(req.Digit)
		store.AppendDigit(r)
		return SuccessResponseJSON(c, fiber.StatusOK, "Digit accepted", mapState(store, registry))
	}
}

// PressOperator appends one of the four keypad operators.
func PressOperator(mgr *conversion.Manager, registry *currency.Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		store, err := sessionStore(c, mgr)
		if store == nil {
			return err
		}
		req, err := BindAndValidate[operatorRequest](c)
		if req == nil {
			return err
		}
		r, _ := utf8.DecodeRuneInString(req.Operator)
		store.AppendOperator(r)
		return SuccessResponseJSON(c, fiber.StatusOK, "Operator accepted", mapState(store, registry))
	}
}

// PressBackspace removes the last input character.
func PressBackspace(mgr *conversion.Manager, registry *currency.Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		store, err := sessionStore(c, mgr)
		if store == nil {
			return err
		}
		store.Backspace()
		return SuccessResponseJSON(c, fiber.StatusOK, "Backspace accepted", mapState(store, registry))
	}
}

// PressClear resets the input string.
func PressClear(mgr *conversion.Manager, registry *currency.Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		store, err := sessionStore(c, mgr)
		if store == nil {
			return err
		}
		store.ClearInput()
		return SuccessResponseJSON(c, fiber.StatusOK, "Input cleared", mapState(store, registry))
	}
}
