// Package rates provides the rate lookup service: TTL-cached snapshots
// with a stale-cache fallback when the live source is unreachable.
package rates

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/fxcalc/pkg/cache"
	"github.com/amirasaad/fxcalc/pkg/domain/rates"
	"github.com/amirasaad/fxcalc/pkg/provider"
	"golang.org/x/sync/singleflight"
)

// Service produces rate snapshots for the fixed base currency.
//
// Lookup order: a cached snapshot younger than the TTL is returned without
// a network call; otherwise the provider is consulted (concurrent callers
// share one in-flight fetch) and the result persisted. When the fetch
// fails, any cached snapshot, however old, is served as a stale fallback.
type Service struct {
	provider provider.RateProvider
	cache    cache.RateCache
	ttl      time.Duration
	logger   *slog.Logger
	group    singleflight.Group
}

// New creates a rate service with the given provider, cache, and refresh TTL.
func New(p provider.RateProvider, c cache.RateCache, ttl time.Duration, logger *slog.Logger) *Service {
	return &Service{
		provider: p,
		cache:    c,
		ttl:      ttl,
		logger:   logger,
	}
}

// Latest returns the current snapshot. stale is true only when the live
// fetch failed and the returned snapshot came from the cache past its TTL;
// callers use it to flag the offline state.
func (s *Service) Latest(ctx context.Context) (snap *rates.Snapshot, stale bool, err error) {
	cached, cerr := s.cache.Get(ctx)
	if cerr != nil {
		s.logger.Warn("rate cache read failed", "error", cerr)
		cached = nil
	}
	if cached != nil && cached.Age() < s.ttl {
		s.logger.Debug("serving rates from cache", "base", cached.Base, "age", cached.Age())
		return cached, false, nil
	}

	v, ferr, _ := s.group.Do("latest", func() (any, error) {
		fresh, err := s.provider.FetchLatest(ctx)
		if err != nil {
			return nil, err
		}
		// A failed cache write must never fail the fetch.
		if serr := s.cache.Set(ctx, fresh); serr != nil {
			s.logger.Warn("rate cache write failed", "error", serr)
		}
		return fresh, nil
	})
	if ferr == nil {
		return v.(*rates.Snapshot), false, nil
	}

	s.logger.Warn("rate fetch failed", "provider", s.provider.Name(), "error", ferr)
	if cached != nil {
		s.logger.Info("falling back to stale rates", "base", cached.Base, "date", cached.Date, "age", cached.Age())
		return cached, true, nil
	}
	return nil, false, fmt.Errorf("%w: %v", rates.ErrUnavailable, ferr)
}
