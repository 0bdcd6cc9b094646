package webapi

import (
	"github.com/amirasaad/fxcalc/pkg/currency"
	"github.com/amirasaad/fxcalc/pkg/service/conversion"
)

type digitRequest struct {
	Digit string `json:"digit" validate:"required,len=1"`
}

type operatorRequest struct {
	Operator string `json:"operator" validate:"required"`
}

type codeRequest struct {
	Code string `json:"code" validate:"required,len=3,alpha"`
}

type reorderRequest struct {
	From *int `json:"from" validate:"required"`
	To   *int `json:"to" validate:"required"`
}

type sessionResponse struct {
	SessionID string `json:"session_id"`
}

type rowResponse struct {
	ID     string  `json:"id"`
	Code   string  `json:"code"`
	Name   string  `json:"name"`
	Symbol string  `json:"symbol"`
	Flag   string  `json:"flag"`
	Value  float64 `json:"value"`
}

type stateResponse struct {
	Rows      []rowResponse `json:"rows"`
	BaseCode  string        `json:"base_code"`
	Input     string        `json:"input"`
	Amount    float64       `json:"amount"`
	RatesDate string        `json:"rates_date,omitempty"`
	Offline   bool          `json:"offline"`
	Loading   bool          `json:"loading"`
}

// mapState renders a store snapshot with per-row derived values and
// display metadata.
func mapState(store *conversion.Store, registry *currency.Registry) stateResponse {
	st := store.State()
	values := store.Values()
	rows := make([]rowResponse, len(values))
	for i, rv := range values {
		meta := registry.Get(rv.Code)
		rows[i] = rowResponse{
			ID:     rv.ID.String(),
			Code:   rv.Code,
			Name:   meta.Name,
			Symbol: meta.Symbol,
			Flag:   meta.Flag,
			Value:  rv.Value,
		}
	}
	return stateResponse{
		Rows:      rows,
		BaseCode:  st.BaseCode,
		Input:     st.Input,
		Amount:    store.Amount(),
		RatesDate: st.RatesDate,
		Offline:   st.Offline,
		Loading:   st.Loading,
	}
}
