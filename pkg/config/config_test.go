package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/awesome/pkg/config"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := config.Parse(nil)
	require.NoError(t, err)

	require.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	require.Equal(t, "mysql", cfg.Database.Driver)
	require.Equal(t, "www-data", cfg.Database.User)
	require.Equal(t, "awesome", cfg.Database.Name)
	require.Equal(t, int32(10), cfg.Database.MaxOpenConns)
	require.Equal(t, int32(1), cfg.Database.MinConns)
	require.Equal(t, "awesession", cfg.Session.Cookie)
	require.Equal(t, 24*time.Hour, cfg.Session.MaxAge)
	require.False(t, cfg.ORM.Strict)
	require.False(t, cfg.Redis.Enabled())
}

func TestParse_Override(t *testing.T) {
	cfg, err := config.Parse([]byte(`
database:
  host: 192.168.0.100
orm:
  strict: true
`))
	require.NoError(t, err)
	require.Equal(t, "192.168.0.100", cfg.Database.Host)
	require.Equal(t, "www-data", cfg.Database.User, "untouched keys keep defaults")
	require.True(t, cfg.ORM.Strict)
}

func TestParse_InvalidOverride(t *testing.T) {
	_, err := config.Parse([]byte("server: [unclosed"))
	require.ErrorIs(t, err, config.ErrParseOverride)
}

func TestParse_Environment(t *testing.T) {
	t.Setenv("SERVER_ADDR", ":8080")
	t.Setenv("DATABASE_DRIVER", "postgres")
	t.Setenv("SESSION_MAX_AGE", "2h")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := config.Parse([]byte("server:\n  addr: 0.0.0.0:1\n"))
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.Server.Addr, "environment wins over the override file")
	require.Equal(t, "postgres", cfg.Database.Driver)
	require.Equal(t, 2*time.Hour, cfg.Session.MaxAge)
	require.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad(t *testing.T) {
	t.Run("reads override file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "override.yaml")
		require.NoError(t, os.WriteFile(path, []byte("session:\n  secret: s3cr3t\n"), 0o600))

		cfg, err := config.Load(path)
		require.NoError(t, err)
		require.Equal(t, "s3cr3t", cfg.Session.Secret)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.ErrorIs(t, err, config.ErrReadOverride)
	})

	t.Run("empty path uses defaults", func(t *testing.T) {
		cfg, err := config.Load("")
		require.NoError(t, err)
		require.Equal(t, "awesession", cfg.Session.Cookie)
	})
}
