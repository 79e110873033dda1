// Package config loads runtime configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/example/solve-square/domain/equation"
)

// Common holds the settings every command reads.
type Common struct {
	Tolerance float64 `env:"SOLVER_TOLERANCE" envDefault:"0.005"`
	LogFormat string  `env:"LOG_FORMAT"       envDefault:"text"`
}

// Config holds the settings for the solver server.
type Config struct {
	Common

	HTTPPort        int           `env:"HTTP_PORT"        envDefault:"3000"`
	DBPath          string        `env:"DB_PATH"          envDefault:"./solutions.db"`
	DBDebug         bool          `env:"DB_DEBUG"         envDefault:"false"`
	RedisAddr       string        `env:"REDIS_ADDR"`
	CacheTTL        time.Duration `env:"CACHE_TTL"        envDefault:"10m"`
	CachePrefix     string        `env:"CACHE_PREFIX"     envDefault:"solve:"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

// LoadCommon parses only the settings shared by all commands, so the
// interactive and examples modes ignore broken server variables.
func LoadCommon() (Common, error) {
	var c Common
	if err := env.Parse(&c); err != nil {
		return Common{}, fmt.Errorf("parse env: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Common{}, err
	}
	return c, nil
}

// Validate checks the shared values.
func (c Common) Validate() error {
	var errs []error
	if _, err := equation.NewSolver(c.Tolerance); err != nil {
		errs = append(errs, fmt.Errorf("SOLVER_TOLERANCE: %w", err))
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT: unknown format %q", c.LogFormat))
	}
	return errors.Join(errs...)
}

// Load parses the environment into a Config and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// CacheEnabled reports whether a Redis address was configured.
func (c Config) CacheEnabled() bool {
	return c.RedisAddr != ""
}

// Validate checks the shared and the server values.
func (c Config) Validate() error {
	errs := []error{c.Common.Validate()}
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		errs = append(errs, fmt.Errorf("HTTP_PORT: %d is out of range", c.HTTPPort))
	}
	if c.DBPath == "" {
		errs = append(errs, errors.New("DB_PATH: must not be empty"))
	}
	if c.CacheEnabled() && c.CacheTTL <= 0 {
		errs = append(errs, fmt.Errorf("CACHE_TTL: %s must be positive", c.CacheTTL))
	}
	return errors.Join(errs...)
}
