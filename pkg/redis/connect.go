package redis

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config holds Redis connection settings. An empty URL means Redis is
// not used and callers fall back to in-process alternatives.
type Config struct {
	URL           string        `yaml:"url" env:"REDIS_URL"`
	PoolSize      int           `yaml:"pool_size" env:"REDIS_POOL_SIZE"`           // 10
	MinIdleConns  int           `yaml:"min_idle_conns" env:"REDIS_MIN_IDLE_CONNS"` // 1
	DialTimeout   time.Duration `yaml:"dial_timeout" env:"REDIS_DIAL_TIMEOUT"`     // 5s
	ReadTimeout   time.Duration `yaml:"read_timeout" env:"REDIS_READ_TIMEOUT"`     // 3s
	WriteTimeout  time.Duration `yaml:"write_timeout" env:"REDIS_WRITE_TIMEOUT"`   // 3s
	RetryAttempts int           `yaml:"retry_attempts" env:"REDIS_RETRY_ATTEMPTS"` // 3
	RetryInterval time.Duration `yaml:"retry_interval" env:"REDIS_RETRY_INTERVAL"` // 2s
}

// Enabled reports whether a connection URL is configured.
func (c Config) Enabled() bool { return c.URL != "" }

func (c Config) withDefaults() Config {
	if c.PoolSize <= 0 {
		c.PoolSize = 10
	}
	if c.MinIdleConns <= 0 {
		c.MinIdleConns = 1
	}
	if c.DialTimeout == 0 {
		c.DialTimeout = 5 * time.Second
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 3 * time.Second
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = 3 * time.Second
	}
	if c.RetryAttempts <= 0 {
		c.RetryAttempts = 3
	}
	if c.RetryInterval == 0 {
		c.RetryInterval = 2 * time.Second
	}
	return c
}

// Options converts the configuration into go-redis client options.
// Both redis:// and rediss:// (TLS) URLs are accepted.
func (c Config) Options() (*redis.Options, error) {
	if c.URL == "" {
		return nil, ErrEmptyConnectionURL
	}
	if !strings.HasPrefix(c.URL, "redis://") && !strings.HasPrefix(c.URL, "rediss://") {
		return nil, ErrFailedToParseURL
	}

	c = c.withDefaults()
	o, err := redis.ParseURL(c.URL)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseURL, err)
	}
	o.PoolSize = c.PoolSize
	o.MinIdleConns = c.MinIdleConns
	o.DialTimeout = c.DialTimeout
	o.ReadTimeout = c.ReadTimeout
	o.WriteTimeout = c.WriteTimeout
	return o, nil
}

// Open creates a Redis client and verifies it with PING, retrying with a
// growing delay.
//
// Example:
//
//	client, err := redis.Open(ctx, cfg.Redis)
func Open(ctx context.Context, cfg Config) (redis.UniversalClient, error) {
	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	for i := range cfg.RetryAttempts {
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err == nil {
			return client, nil
		}
		_ = client.Close()

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrConnectionFailed, ctx.Err())
		case <-time.After(time.Duration(i+1) * cfg.RetryInterval):
		}
	}

	return nil, ErrConnectionFailed
}

// Healthcheck returns a readiness check that pings the client.
func Healthcheck(client redis.UniversalClient) func(context.Context) error {
	return func(ctx context.Context) error {
		if client == nil {
			return ErrHealthcheckFailed
		}
		if err := client.Ping(ctx).Err(); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}

// Shutdown returns a shutdown hook that closes the client.
func Shutdown(client redis.UniversalClient) func(ctx context.Context) error {
	return func(context.Context) error {
		return client.Close()
	}
}
