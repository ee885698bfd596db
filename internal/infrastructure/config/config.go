package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET, required"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	Upstream UpstreamConfig
	Redis    RedisConfig
}

// UpstreamConfig locates the campus backend the gateway orchestrates.
// The hardcoded localhost fallback keeps local development zero-config.
type UpstreamConfig struct {
	BaseURL string `env:"UPSTREAM_BASE_URL, default=http://localhost:8000"`
}

// RedisConfig selects the session/rate-limit store. An empty address switches
// the gateway to its in-memory adapters.
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

// Dev reports whether the process runs in development mode (raw errors shown).
func (c *Config) Dev() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
