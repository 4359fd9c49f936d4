// Package config loads the application configuration.
//
// Values are layered: the embedded defaults, then an optional YAML
// override file, then environment variables.
//
//	cfg, err := config.Load(os.Getenv("AWESOME_CONFIG"))
package config

import (
	_ "embed"
	"errors"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/awesome/pkg/db"
	"github.com/dmitrymomot/awesome/pkg/logger"
	"github.com/dmitrymomot/awesome/pkg/redis"
)

//go:embed default.yaml
var defaults []byte

// Config is the root configuration.
type Config struct {
	Server    Server        `yaml:"server"`
	Database  db.Config     `yaml:"database"`
	Redis     redis.Config  `yaml:"redis"`
	Session   Session       `yaml:"session"`
	Log       logger.Config `yaml:"log"`
	ORM       ORM           `yaml:"orm"`
	RateLimit RateLimit     `yaml:"rate_limit"`
}

type Server struct {
	Addr            string        `yaml:"addr" env:"SERVER_ADDR"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env:"SERVER_IDLE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`
}

// Session configures the sign-in cookie.
type Session struct {
	Cookie string        `yaml:"cookie" env:"SESSION_COOKIE"`
	Secret string        `yaml:"secret" env:"SESSION_SECRET"`
	MaxAge time.Duration `yaml:"max_age" env:"SESSION_MAX_AGE"`
	Secure bool          `yaml:"secure" env:"SESSION_SECURE"`
}

// ORM selects the affected-rows mode. Strict turns row count mismatches
// into errors instead of warnings.
type ORM struct {
	Strict bool `yaml:"strict" env:"ORM_STRICT"`
}

// RateLimit throttles sign-in attempts per client address.
type RateLimit struct {
	AuthenticatePerMinute int `yaml:"authenticate_per_minute" env:"RATE_LIMIT_AUTHENTICATE"`
	Burst                 int `yaml:"burst" env:"RATE_LIMIT_BURST"`
}

// Load reads the defaults, merges the override file when path is not
// empty, then applies environment variables.
func Load(path string) (*Config, error) {
	var override []byte
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Join(ErrReadOverride, err)
		}
		override = b
	}
	return Parse(override)
}

// Parse is Load with the override document given directly.
func Parse(override []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaults, cfg); err != nil {
		return nil, errors.Join(ErrParseDefaults, err)
	}
	if len(override) > 0 {
		if err := yaml.Unmarshal(override, cfg); err != nil {
			return nil, errors.Join(ErrParseOverride, err)
		}
	}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.Join(ErrParseEnv, err)
	}
	return cfg, nil
}
