// Package config parses application configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds all application configuration parsed from environment variables.
type Config struct {
	// Storage backend: memory, redis, or postgres
	StorageType string `env:"STORAGE_TYPE" envDefault:"memory"`

	// Database
	DatabaseURL string `env:"DATABASE_URL"`
	PGHost      string `env:"PGHOST" envDefault:"localhost"`
	PGPort      int    `env:"PGPORT" envDefault:"5432"`
	PGUser      string `env:"PGUSER" envDefault:"leagueops"`
	PGPassword  string `env:"PGPASSWORD" envDefault:"leagueops"`
	PGDatabase  string `env:"PGDATABASE" envDefault:"leagueops"`

	// Redis (storage backend and change notifications)
	RedisURL       string `env:"REDIS_URL" envDefault:"redis://localhost:6379"`
	NotifyViaRedis bool   `env:"NOTIFY_VIA_REDIS" envDefault:"false"`

	// Local snapshot cache
	CacheDir string `env:"CACHE_DIR" envDefault:".leagueops-cache"`

	// Admin credential
	AdminUsername string `env:"ADMIN_USERNAME" envDefault:"Admin"`
	AdminPassword string `env:"ADMIN_PASSWORD" envDefault:"Dog13"`

	// Server
	APIHost string `env:"API_HOST" envDefault:""`
	APIPort int    `env:"API_PORT" envDefault:"8080"`

	// Dev
	AllowInsecureDefaults bool `env:"ALLOW_INSECURE_DEFAULTS" envDefault:"false"`
}

// Load parses environment variables into a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Validate checks for insecure configuration that must not run in production.
// Set ALLOW_INSECURE_DEFAULTS=true to bypass (local dev only).
func (c *Config) Validate() error {
	switch c.StorageType {
	case "memory", "redis", "postgres":
	default:
		return fmt.Errorf("STORAGE_TYPE must be memory, redis or postgres, got %q", c.StorageType)
	}
	if c.AllowInsecureDefaults {
		return nil
	}
	if c.AdminPassword == "Dog13" {
		return fmt.Errorf("ADMIN_PASSWORD is set to the insecure default; set a real password or set ALLOW_INSECURE_DEFAULTS=true for local dev")
	}
	return nil
}

// DSN returns the PostgreSQL connection string, preferring DATABASE_URL if set.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.PGUser, c.PGPassword, c.PGHost, c.PGPort, c.PGDatabase)
}
