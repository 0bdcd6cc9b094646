// Package conversion implements the converter's state machine: the ordered
// currency rows, the selected base currency, the raw keypad input string,
// and the values derived from the cached rate table.
package conversion

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/amirasaad/fxcalc/pkg/calculator"
	"github.com/amirasaad/fxcalc/pkg/currency"
	ratessvc "github.com/amirasaad/fxcalc/pkg/service/rates"
	"github.com/google/uuid"
)

// DefaultCodes is the currency list seeded on a session's first launch.
var DefaultCodes = []string{"USD", "EUR", "GBP", "JPY", "KRW"}

// Row is one displayed currency. Slice order is display order.
type Row struct {
	ID   uuid.UUID `json:"id"`
	Code string    `json:"code"`
}

// State is an observable copy of the store's state.
//
// Invariants: BaseCode always references an existing row; Input obeys the
// keypad grammar enforced by the calculator package.
type State struct {
	Rows      []Row
	BaseCode  string
	Input     string
	Rates     map[string]float64
	RatesDate string
	Offline   bool
	Loading   bool
}

// Store holds one session's converter state. Every operation is a total
// function: invalid requests (duplicate code, removing the last row, an
// out-of-range reorder) degrade to a no-op or a zero value, never an error
// surfacing to the transport layer.
type Store struct {
	mu        sync.Mutex
	rows      []Row
	baseCode  string
	input     string
	rates     map[string]float64
	ratesDate string
	offline   bool
	loading   bool

	svc      *ratessvc.Service
	registry *currency.Registry
	logger   *slog.Logger
	subs     []func(State)
}

// NewStore creates a store seeded with the given currency codes and base.
// An empty code list falls back to DefaultCodes; a base not present in the
// list falls back to the first row.
func NewStore(svc *ratessvc.Service, registry *currency.Registry, codes []string, baseCode string, logger *slog.Logger) *Store {
	if len(codes) == 0 {
		codes = DefaultCodes
	}
	rows := make([]Row, 0, len(codes))
	seen := make(map[string]bool, len(codes))
	for _, code := range codes {
		code = strings.ToUpper(code)
		if seen[code] {
			continue
		}
		seen[code] = true
		rows = append(rows, Row{ID: uuid.New(), Code: code})
	}
	if !seen[strings.ToUpper(baseCode)] {
		baseCode = rows[0].Code
	}
	return &Store{
		rows:     rows,
		baseCode: strings.ToUpper(baseCode),
		rates:    map[string]float64{},
		loading:  true,
		svc:      svc,
		registry: registry,
		logger:   logger,
	}
}

// Subscribe registers an observer invoked with a state copy after every
// mutation. Observers run outside the store lock.
func (s *Store) Subscribe(fn func(State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// State returns a copy of the current state safe for rendering.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() State {
	rows := make([]Row, len(s.rows))
	copy(rows, s.rows)
	rt := make(map[string]float64, len(s.rates))
	for k, v := range s.rates {
		rt[k] = v
	}
	return State{
		Rows:      rows,
		BaseCode:  s.baseCode,
		Input:     s.input,
		Rates:     rt,
		RatesDate: s.ratesDate,
		Offline:   s.offline,
		Loading:   s.loading,
	}
}

// notify invokes subscribers with a state copy, outside the lock.
func (s *Store) notify() {
	s.mu.Lock()
	st := s.snapshotLocked()
	subs := append(([]func(State))(nil), s.subs...)
	s.mu.Unlock()
	for _, fn := range subs {
		fn(st)
	}
}

// LoadRates refreshes the rate table. On success the store goes online; on
// a stale fallback or a total failure it goes offline, with whatever rates
// were recovered (possibly none). Safe to invoke repeatedly; keypad input
// keeps working while a load is in flight, deriving against the currently
// held table.
func (s *Store) LoadRates(ctx context.Context) {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()
	s.notify()

	snap, stale, err := s.svc.Latest(ctx)

	s.mu.Lock()
	s.loading = false
	switch {
	case err != nil:
		s.offline = true
		s.rates = map[string]float64{}
		s.ratesDate = ""
		s.logger.Warn("rates unavailable, entering offline state with empty table", "error", err)
	default:
		s.offline = stale
		s.rates = snap.Rates
		s.ratesDate = snap.Date
	}
	s.mu.Unlock()
	s.notify()
}

// AppendDigit appends a digit or decimal point to the input string, subject
// to the keypad grammar. Rejected keystrokes are dropped silently.
func (s *Store) AppendDigit(d rune) {
	s.mu.Lock()
	s.input = calculator.AppendDigit(s.input, d)
	s.mu.Unlock()
	s.notify()
}

// AppendOperator appends one of + - × ÷; a trailing operator is replaced.
func (s *Store) AppendOperator(op rune) {
	s.mu.Lock()
	s.input = calculator.AppendOperator(s.input, op)
	s.mu.Unlock()
	s.notify()
}

// Backspace removes the last input character.
func (s *Store) Backspace() {
	s.mu.Lock()
	s.input = calculator.Backspace(s.input)
	s.mu.Unlock()
	s.notify()
}

// ClearInput resets the input string.
func (s *Store) ClearInput() {
	s.mu.Lock()
	s.input = ""
	s.mu.Unlock()
	s.notify()
}

// SetBaseCurrency switches the base to code, which must belong to an
// existing row. A positive entered amount is converted into the new base
// currency and re-rendered at that currency's display precision, so the
// number on screen keeps its meaning across the switch.
func (s *Store) SetBaseCurrency(code string) {
	code = strings.ToUpper(code)
	s.mu.Lock()
	if code == s.baseCode || !s.hasCodeLocked(code) {
		s.mu.Unlock()
		return
	}
	amount := calculator.Evaluate(s.input)
	if amount > 0 {
		oldRate, okOld := s.rates[s.baseCode]
		newRate, okNew := s.rates[code]
		if okOld && okNew && oldRate > 0 {
			converted := amount * newRate / oldRate
			s.input = formatAmount(converted, s.registry.Get(code).Decimals)
		}
	}
	s.baseCode = code
	s.mu.Unlock()
	s.notify()
}

// AddCurrency appends a new row for code; silently no-op when the code is
// already displayed.
func (s *Store) AddCurrency(code string) {
	code = strings.ToUpper(code)
	s.mu.Lock()
	if s.hasCodeLocked(code) {
		s.mu.Unlock()
		return
	}
	s.rows = append(s.rows, Row{ID: uuid.New(), Code: code})
	s.mu.Unlock()
	s.notify()
}

// RemoveCurrency deletes the row with the given id. Removing the last
// remaining row is forbidden (no-op). When the base row is removed the
// base reassigns to the first remaining row.
func (s *Store) RemoveCurrency(id uuid.UUID) {
	s.mu.Lock()
	if len(s.rows) <= 1 {
		s.mu.Unlock()
		return
	}
	idx := s.indexOfLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	removed := s.rows[idx]
	s.rows = append(s.rows[:idx], s.rows[idx+1:]...)
	if removed.Code == s.baseCode {
		s.baseCode = s.rows[0].Code
	}
	s.mu.Unlock()
	s.notify()
}

// ChangeCurrency renames a row's code; no-op when another row already uses
// newCode. The base follows a renamed base row.
func (s *Store) ChangeCurrency(id uuid.UUID, newCode string) {
	newCode = strings.ToUpper(newCode)
	s.mu.Lock()
	idx := s.indexOfLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	for i, row := range s.rows {
		if i != idx && row.Code == newCode {
			s.mu.Unlock()
			return
		}
	}
	wasBase := s.rows[idx].Code == s.baseCode
	s.rows[idx].Code = newCode
	if wasBase {
		s.baseCode = newCode
	}
	s.mu.Unlock()
	s.notify()
}

// Reorder moves the row at from to position to (drag-and-drop). Indexes
// out of range are ignored.
func (s *Store) Reorder(from, to int) {
	s.mu.Lock()
	if from < 0 || from >= len(s.rows) || to < 0 || to >= len(s.rows) || from == to {
		s.mu.Unlock()
		return
	}
	row := s.rows[from]
	s.rows = append(s.rows[:from], s.rows[from+1:]...)
	s.rows = append(s.rows[:to], append([]Row{row}, s.rows[to:]...)...)
	s.mu.Unlock()
	s.notify()
}

// SwapWithBase exchanges the first row in display order with the row
// currently holding the base-currency role. Requires at least two rows
// and a base that is not already first.
func (s *Store) SwapWithBase() {
	s.mu.Lock()
	if len(s.rows) < 2 {
		s.mu.Unlock()
		return
	}
	idx := -1
	for i, row := range s.rows {
		if row.Code == s.baseCode {
			idx = i
			break
		}
	}
	if idx <= 0 {
		s.mu.Unlock()
		return
	}
	s.rows[0], s.rows[idx] = s.rows[idx], s.rows[0]
	s.mu.Unlock()
	s.notify()
}

// Amount returns the evaluated base-currency amount of the input string.
func (s *Store) Amount() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return calculator.Evaluate(s.input)
}

// Value derives the displayed amount for one currency: the evaluated input
// multiplied by rates[code]/rates[base]. Missing rates derive to 0.
func (s *Store) Value(code string) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.valueLocked(strings.ToUpper(code))
}

func (s *Store) valueLocked(code string) float64 {
	baseRate, okBase := s.rates[s.baseCode]
	rate, ok := s.rates[code]
	if !okBase || !ok || baseRate == 0 {
		return 0
	}
	return calculator.Evaluate(s.input) * rate / baseRate
}

// RowValue pairs a row with its derived amount.
type RowValue struct {
	Row
	Value float64 `json:"value"`
}

// Values derives every row's amount in display order.
func (s *Store) Values() []RowValue {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]RowValue, len(s.rows))
	for i, row := range s.rows {
		out[i] = RowValue{Row: row, Value: s.valueLocked(row.Code)}
	}
	return out
}

func (s *Store) hasCodeLocked(code string) bool {
	for _, row := range s.rows {
		if row.Code == code {
			return true
		}
	}
	return false
}

func (s *Store) indexOfLocked(id uuid.UUID) int {
	for i, row := range s.rows {
		if row.ID == id {
			return i
		}
	}
	return -1
}

// formatAmount renders a converted amount at the currency's display
// precision with trailing zeros (and a dangling point) stripped.
func formatAmount(v float64, decimals int) string {
	out := strconv.FormatFloat(v, 'f', decimals, 64)
	if strings.ContainsRune(out, '.') {
		out = strings.TrimRight(out, "0")
		out = strings.TrimRight(out, ".")
	}
	return out
}
