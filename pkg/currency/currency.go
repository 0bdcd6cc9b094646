// Package currency provides the registry of currency metadata used to
// render rows (flag, symbol) and to round converted amounts to a
// currency's display precision.
package currency

import (
	"sort"
	"strings"
	"sync"
)

const (
	// DefaultCurrency is the fallback currency code (USD)
	DefaultCurrency = "USD"
	// DefaultDecimals is the default display precision for currencies
	DefaultDecimals = 2
)

// Meta holds display metadata for one currency.
type Meta struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Flag     string `json:"flag"`
	Decimals int    `json:"decimals"`
}

// Registry maps currency codes to their metadata. Safe for concurrent use.
type Registry struct {
	mu         sync.RWMutex
	currencies map[string]Meta
}

// NewRegistry creates a registry pre-populated with the default currency set.
func NewRegistry() *Registry {
	r := &Registry{currencies: make(map[string]Meta)}
	for _, meta := range defaultCurrencies {
		r.Register(meta)
	}
	return r
}

// Register adds or updates a currency in the registry.
func (r *Registry) Register(meta Meta) {
	meta.Code = strings.ToUpper(meta.Code)
	if meta.Decimals < 0 {
		meta.Decimals = DefaultDecimals
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.currencies[meta.Code] = meta
}

// Get returns metadata for the given code. Unknown codes get a sensible
// default (two decimals, the code itself as symbol) so lookups are total.
func (r *Registry) Get(code string) Meta {
	code = strings.ToUpper(code)
	r.mu.RLock()
	defer r.mu.RUnlock()
	if meta, ok := r.currencies[code]; ok {
		return meta
	}
	return Meta{Code: code, Name: code, Symbol: code, Decimals: DefaultDecimals}
}

// IsSupported checks if a currency code is registered.
func (r *Registry) IsSupported(code string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.currencies[strings.ToUpper(code)]
	return ok
}

// ListSupported returns all registered currency codes, sorted.
func (r *Registry) ListSupported() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	codes := make([]string, 0, len(r.currencies))
	for code := range r.currencies {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// All returns metadata for every registered currency, sorted by code.
// Feeds the currency selector sheet.
func (r *Registry) All() []Meta {
	r.mu.RLock()
	all := make([]Meta, 0, len(r.currencies))
	for _, meta := range r.currencies {
		all = append(all, meta)
	}
	r.mu.RUnlock()
	sort.Slice(all, func(i, j int) bool { return all[i].Code < all[j].Code })
	return all
}

var defaultCurrencies = []Meta{
	{Code: "USD", Name: "US Dollar", Symbol: "$", Flag: "🇺🇸", Decimals: 2},
	{Code: "EUR", Name: "Euro", Symbol: "€", Flag: "🇪🇺", Decimals: 2},
	{Code: "GBP", Name: "British Pound", Symbol: "£", Flag: "🇬🇧", Decimals: 2},
	{Code: "JPY", Name: "Japanese Yen", Symbol: "¥", Flag: "🇯🇵", Decimals: 0},
	{Code: "KRW", Name: "South Korean Won", Symbol: "₩", Flag: "🇰🇷", Decimals: 0},
	{Code: "CNY", Name: "Chinese Yuan", Symbol: "¥", Flag: "🇨🇳", Decimals: 2},
	{Code: "CAD", Name: "Canadian Dollar", Symbol: "C$", Flag: "🇨🇦", Decimals: 2},
	{Code: "AUD", Name: "Australian Dollar", Symbol: "A$", Flag: "🇦🇺", Decimals: 2},
	{Code: "CHF", Name: "Swiss Franc", Symbol: "CHF", Flag: "🇨🇭", Decimals: 2},
	{Code: "INR", Name: "Indian Rupee", Symbol: "₹", Flag: "🇮🇳", Decimals: 2},
	{Code: "KWD", Name: "Kuwaiti Dinar", Symbol: "د.ك", Flag: "🇰🇼", Decimals: 3},
	{Code: "EGP", Name: "Egyptian Pound", Symbol: "£", Flag: "🇪🇬", Decimals: 2},
	{Code: "BRL", Name: "Brazilian Real", Symbol: "R$", Flag: "🇧🇷", Decimals: 2},
	{Code: "MXN", Name: "Mexican Peso", Symbol: "$", Flag: "🇲🇽", Decimals: 2},
	{Code: "SGD", Name: "Singapore Dollar", Symbol: "S$", Flag: "🇸🇬", Decimals: 2},
	{Code: "HKD", Name: "Hong Kong Dollar", Symbol: "HK$", Flag: "🇭🇰", Decimals: 2},
	{Code: "SEK", Name: "Swedish Krona", Symbol: "kr", Flag: "🇸🇪", Decimals: 2},
	{Code: "NOK", Name: "Norwegian Krone", Symbol: "kr", Flag: "🇳🇴", Decimals: 2},
	{Code: "NZD", Name: "New Zealand Dollar", Symbol: "NZ$", Flag: "🇳🇿", Decimals: 2},
	{Code: "TRY", Name: "Turkish Lira", Symbol: "₺", Flag: "🇹🇷", Decimals: 2},
	{Code: "VND", Name: "Vietnamese Dong", Symbol: "₫", Flag: "🇻🇳", Decimals: 0},
	{Code: "THB", Name: "Thai Baht", Symbol: "฿", Flag: "🇹🇭", Decimals: 2},
}
