// Package config maps environment variables onto the runtime settings of the
// viewer.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Store backends.
const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Config holds all runtime configuration.
type Config struct {
	// Server settings
	ServerAddr string `env:"SERVER_ADDR" envDefault:"0.0.0.0:8080"`
	Debug      bool   `env:"DEBUG"       envDefault:"false"`

	// Persistence for the recent-threads cache
	StoreBackend string `env:"STORE_BACKEND" envDefault:"sqlite"`
	SQLitePath   string `env:"SQLITE_PATH"   envDefault:"redditviewer.db"`
	DatabaseURL  string `env:"DATABASE_URL"`
	RedisURL     string `env:"REDIS_URL"`

	// Reddit source
	RedditBaseURL   string  `env:"REDDIT_BASE_URL"   envDefault:"https://www.reddit.com"`
	RedditUserAgent string  `env:"REDDIT_USER_AGENT" envDefault:"RedditViewer/1.0"`
	RedditRPS       float64 `env:"REDDIT_RPS"        envDefault:"1"`

	// Translation service
	TranslateURL         string  `env:"TRANSLATE_URL"         envDefault:"https://translate-pa.googleapis.com/v1/translateHtml"`
	TranslateAPIKey      string  `env:"TRANSLATE_API_KEY"`
	TranslateTarget      string  `env:"TRANSLATE_TARGET"      envDefault:"vi"`
	TranslateConcurrency int     `env:"TRANSLATE_CONCURRENCY" envDefault:"4"`
	TranslateRPS         float64 `env:"TRANSLATE_RPS"         envDefault:"5"`

	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT" envDefault:"30s"`
}

// Load parses environment variables into a [Config] and validates it.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	var errs []error
	switch c.StoreBackend {
	case BackendSQLite:
		if c.SQLitePath == "" {
			errs = append(errs, errors.New("SQLITE_PATH is required for the sqlite backend"))
		}
	case BackendPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres backend"))
		}
	case BackendRedis:
		if c.RedisURL == "" {
			errs = append(errs, errors.New("REDIS_URL is required for the redis backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend))
	}
	if c.TranslateConcurrency < 1 {
		errs = append(errs, errors.New("TRANSLATE_CONCURRENCY must be at least 1"))
	}
	if c.RedditRPS < 0 || c.TranslateRPS < 0 {
		errs = append(errs, errors.New("rate limits must not be negative"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
