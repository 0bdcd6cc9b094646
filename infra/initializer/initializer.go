// Package initializer wires infrastructure into the services the web
// layer depends on: the rate cache (Redis when configured, in-memory
// otherwise), the rate provider, the preferences store (Postgres when
// configured), and the session store manager.
package initializer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/fxcalc/infra"
	infracache "github.com/amirasaad/fxcalc/infra/cache"
	infraprovider "github.com/amirasaad/fxcalc/infra/provider"
	infraprefs "github.com/amirasaad/fxcalc/infra/repository/preferences"
	"github.com/amirasaad/fxcalc/pkg/cache"
	"github.com/amirasaad/fxcalc/pkg/config"
	"github.com/amirasaad/fxcalc/pkg/currency"
	"github.com/amirasaad/fxcalc/pkg/repository/preferences"
	"github.com/amirasaad/fxcalc/pkg/service/conversion"
	ratessvc "github.com/amirasaad/fxcalc/pkg/service/rates"
	"github.com/redis/go-redis/v9"
)

// Deps bundles everything the web layer needs.
type Deps struct {
	Logger   *slog.Logger
	Registry *currency.Registry
	Rates    *ratessvc.Service
	Manager  *conversion.Manager
}

// InitializeDependencies builds all services from config. Optional backing
// stores degrade gracefully: no Redis URL means an in-process rate cache,
// no database URL means layouts last only for the process lifetime.
func InitializeDependencies(cfg *config.App) (*Deps, error) {
	logger := setupLogger(cfg.Log)

	rateCache, err := buildRateCache(cfg, logger)
	if err != nil {
		return nil, err
	}

	prefsRepo, err := buildPreferencesRepo(cfg, logger)
	if err != nil {
		return nil, err
	}

	rateProvider := infraprovider.NewRateAPIProvider(*cfg.RateAPI, logger)
	rateService := ratessvc.New(rateProvider, rateCache, cfg.RateCache.TTL, logger)
	registry := currency.NewRegistry()
	manager := conversion.NewManager(rateService, registry, prefsRepo, logger)

	return &Deps{
		Logger:   logger,
		Registry: registry,
		Rates:    rateService,
		Manager:  manager,
	}, nil
}

func buildRateCache(cfg *config.App, logger *slog.Logger) (cache.RateCache, error) {
	if cfg.Redis.URL == "" {
		logger.Warn("no Redis configured, rate cache will not survive restarts")
		return infracache.NewMemoryRateCache(), nil
	}
	opt, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid Redis URL: %w", err)
	}
	rc := infracache.NewRedisRateCache(opt, cfg.Redis.KeyPrefix, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rc.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	logger.Info("rate cache backed by Redis", "prefix", cfg.Redis.KeyPrefix)
	return rc, nil
}

func buildPreferencesRepo(cfg *config.App, logger *slog.Logger) (preferences.Repository, error) {
	if cfg.DB.Url == "" {
		logger.Warn("no database configured, layout preferences will not survive restarts")
		return infraprefs.NewMemory(), nil
	}
	db, err := infra.NewDBConnection(*cfg.DB, cfg.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := infraprefs.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate layout preferences: %w", err)
	}
	logger.Info("layout preferences backed by Postgres")
	return infraprefs.New(db), nil
}
