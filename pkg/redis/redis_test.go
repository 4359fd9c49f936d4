package redis_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/awesome/pkg/redis"
)

func TestConfig_Options(t *testing.T) {
	t.Parallel()

	t.Run("empty URL", func(t *testing.T) {
		t.Parallel()

		_, err := redis.Config{}.Options()
		require.ErrorIs(t, err, redis.ErrEmptyConnectionURL)
		require.False(t, redis.Config{}.Enabled())
	})

	for _, url := range []string{"http://localhost:6379", "localhost:6379", "postgresql://localhost:6379"} {
		t.Run("rejects "+url, func(t *testing.T) {
			t.Parallel()

			_, err := redis.Config{URL: url}.Options()
			require.ErrorIs(t, err, redis.ErrFailedToParseURL)
		})
	}

	t.Run("applies defaults", func(t *testing.T) {
		t.Parallel()

		o, err := redis.Config{URL: "redis://localhost:6379/2"}.Options()
		require.NoError(t, err)
		require.Equal(t, "localhost:6379", o.Addr)
		require.Equal(t, 2, o.DB)
		require.Equal(t, 10, o.PoolSize)
		require.Equal(t, 5*time.Second, o.DialTimeout)
	})

	t.Run("keeps explicit values", func(t *testing.T) {
		t.Parallel()

		o, err := redis.Config{URL: "rediss://localhost:6380", PoolSize: 3}.Options()
		require.NoError(t, err)
		require.Equal(t, 3, o.PoolSize)
		require.NotNil(t, o.TLSConfig)
	})
}

func TestOpen_ContextCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := redis.Open(ctx, redis.Config{URL: "redis://127.0.0.1:1", RetryInterval: time.Hour})
	require.ErrorIs(t, err, redis.ErrConnectionFailed)
}

func TestHealthcheck_NilClient(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, redis.Healthcheck(nil)(context.Background()), redis.ErrHealthcheckFailed)
}

func TestOpen_Live(t *testing.T) {
	t.Parallel()

	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}

	ctx := context.Background()
	client, err := redis.Open(ctx, redis.Config{URL: url})
	require.NoError(t, err)
	require.NoError(t, redis.Healthcheck(client)(ctx))
	require.NoError(t, redis.Shutdown(client)(ctx))
}
