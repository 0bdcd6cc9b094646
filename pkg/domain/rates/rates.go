// Package rates holds the exchange rate snapshot type shared by the
// provider, cache, and conversion layers.
package rates

import (
	"errors"
	"time"
)

// ErrUnavailable indicates that no rate source could produce a snapshot:
// the live fetch failed and no cached snapshot exists.
var ErrUnavailable = errors.New("exchange rates unavailable")

// Snapshot is a table of exchange rates relative to Base, as published by
// the rate source on Date and captured locally at CachedAt.
//
// A snapshot is immutable once captured; refreshes replace it wholesale.
// Invariant: Rates[Base] == 1.
type Snapshot struct {
	Base     string             `json:"base"`
	Date     string             `json:"date"`
	Rates    map[string]float64 `json:"rates"`
	CachedAt time.Time          `json:"cached_at"`
}

// Age returns how long ago the snapshot was captured locally.
func (s *Snapshot) Age() time.Duration {
	return time.Since(s.CachedAt)
}

// Rate looks up the rate for a currency code.
func (s *Snapshot) Rate(code string) (float64, bool) {
	r, ok := s.Rates[code]
	return r, ok
}
