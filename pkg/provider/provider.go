package provider

import (
	"context"

	"github.com/amirasaad/fxcalc/pkg/domain/rates"
)

// RateProvider fetches the latest rate snapshot for a fixed base currency
// from an external source.
type RateProvider interface {
	FetchLatest(ctx context.Context) (*rates.Snapshot, error)
	Name() string
}
