package config

import (
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Load reads configuration from the environment, optionally pre-loading a
// .env file when one exists in the working directory or any parent.
func Load(envFilePath ...string) (*App, error) {
	logger := slog.Default()

	path := ".env"
	if len(envFilePath) > 0 && envFilePath[0] != "" {
		path = envFilePath[0]
	}

	if found, err := findEnvFile(path); err == nil {
		if err := godotenv.Load(found); err != nil {
			logger.Warn("failed to load environment file", "path", found, "error", err)
		} else {
			logger.Info("environment loaded from file", "path", found)
		}
	} else {
		logger.Warn("no environment file found, using system environment", "path", path)
	}

	var cfg App
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	logger.Info("app config loaded",
		"env", cfg.Env,
		"rate_api_url", cfg.RateAPI.URL,
		"rate_api_base", cfg.RateAPI.BaseCurrency,
		"rate_cache_ttl", cfg.RateCache.TTL,
		"redis", maskValue(cfg.Redis.URL),
		"db", maskValue(cfg.DB.Url),
	)
	return &cfg, nil
}

func maskValue(key string) string {
	if len(key) <= 6 {
		return "****"
	}
	return key[:2] + "****" + key[len(key)-4:]
}
