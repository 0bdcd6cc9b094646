package config

import (
	"time"
)

type Server struct {
	Host string `envconfig:"HOST" default:"localhost"`
	Port int    `envconfig:"PORT" default:"3000"`
}

type Log struct {
	Level  int    `envconfig:"LEVEL" default:"0"`
	Format string `envconfig:"FORMAT" default:"json"`
}

type DB struct {
	Url string `envconfig:"URL"`
}

type Redis struct {
	URL       string `envconfig:"URL"`
	KeyPrefix string `envconfig:"KEY_PREFIX" default:"fxcalc:"`
}

type RateLimit struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"100"`
	Window      time.Duration `envconfig:"WINDOW" default:"1m"`
}

type RateAPI struct {
	URL          string        `envconfig:"URL" default:"https://api.exchangerate-api.com/v4/latest"`
	BaseCurrency string        `envconfig:"BASE_CURRENCY" default:"USD"`
	HTTPTimeout  time.Duration `envconfig:"HTTP_TIMEOUT" default:"10s"`
}

type RateCache struct {
	// TTL is the refresh cadence: a cached snapshot younger than this is
	// served without a network call. It is not a hard expiry; older
	// snapshots still serve as the offline fallback.
	TTL time.Duration `envconfig:"TTL" default:"1h"`
}

type App struct {
	Env       string     `envconfig:"APP_ENV" default:"development"`
	Server    *Server    `envconfig:"SERVER"`
	Log       *Log       `envconfig:"LOG"`
	DB        *DB        `envconfig:"DATABASE"`
	Redis     *Redis     `envconfig:"REDIS"`
	RateAPI   *RateAPI   `envconfig:"RATE_API"`
	RateCache *RateCache `envconfig:"RATE_CACHE"`
	RateLimit *RateLimit `envconfig:"RATE_LIMIT"`
}
