package db

import "time"

// Supported driver names.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// Config holds database connection parameters.
// Values come from the YAML configuration and may be overridden by
// environment variables. Zero values fall back to the defaults listed on
// each field.
type Config struct {
	// Driver is "mysql" (default) or "postgres".
	Driver string `yaml:"driver" env:"DATABASE_DRIVER"`

	// Full connection string. When set it takes precedence over the
	// individual connection fields below.
	ConnectionString string `yaml:"url" env:"DATABASE_CONN_URL"`

	Host     string `yaml:"host" env:"DATABASE_HOST"`         // 127.0.0.1
	Port     int    `yaml:"port" env:"DATABASE_PORT"`         // 3306 for mysql, 5432 for postgres
	User     string `yaml:"user" env:"DATABASE_USER"`         // www-data
	Password string `yaml:"password" env:"DATABASE_PASSWORD"`
	Name     string `yaml:"name" env:"DATABASE_NAME"`         // awesome
	Charset  string `yaml:"charset" env:"DATABASE_CHARSET"`   // utf8, mysql only

	// Pool limits.
	MaxOpenConns int32 `yaml:"max_open_conns" env:"DATABASE_MAX_OPEN_CONNS"` // 10
	MinConns     int32 `yaml:"min_conns" env:"DATABASE_MIN_CONNS"`           // 1

	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME"` // 10m
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime" env:"DATABASE_MAX_CONN_LIFETIME"`   // 30m

	// Startup retry. Attempt n waits n*RetryInterval before the next try.
	RetryAttempts int           `yaml:"retry_attempts" env:"DATABASE_RETRY_ATTEMPTS"` // 3
	RetryInterval time.Duration `yaml:"retry_interval" env:"DATABASE_RETRY_INTERVAL"` // 2s

	MigrationsTable string `yaml:"migrations_table" env:"DATABASE_MIGRATIONS_TABLE"` // schema_migrations
}

// WithDefaults returns a copy of c with every zero field set to its default.
func (c Config) WithDefaults() Config {
	if c.Driver == "" {
		c.Driver = DriverMySQL
	}
	if c.Host == "" {
		c.Host = "127.0.0.1"
	}
	if c.Port == 0 {
		c.Port = 3306
		if c.Driver == DriverPostgres {
			c.Port = 5432
		}
	}
	if c.User == "" {
		c.User = "www-data"
	}
	if c.Name == "" {
		c.Name = "awesome"
	}
	if c.Charset == "" {
		c.Charset = "utf8"
	}
	if c.MaxOpenConns <= 0 {
		c.MaxOpenConns = 10
	}
	if c.MinConns <= 0 {
		c.MinConns = 1
	}
	if c.MaxConnIdleTime == 0 {
		c.MaxConnIdleTime = 10 * time.Minute
	}
	if c.MaxConnLifetime == 0 {
		c.MaxConnLifetime = 30 * time.Minute
	}
	if c.RetryAttempts <= 0 {
		c.RetryAttempts = 3
	}
	if c.RetryInterval == 0 {
		c.RetryInterval = 2 * time.Second
	}
	if c.MigrationsTable == "" {
		c.MigrationsTable = "schema_migrations"
	}
	return c
}
