package cache_test

import (
	"context"
	"os"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/awesome/pkg/cache"
)

func redisClient(t *testing.T) goredis.UniversalClient {
	t.Helper()

	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}
	opts, err := goredis.ParseURL(url)
	require.NoError(t, err)

	client := goredis.NewClient(opts)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

type identity struct {
	ID    string `json:"id"`
	Admin bool   `json:"admin"`
}

func TestRedis(t *testing.T) {
	t.Parallel()

	client := redisClient(t)
	ctx := context.Background()
	c := cache.NewRedis[identity](client, nil, cache.WithPrefix("awesome-test"))

	require.NoError(t, c.Set(ctx, "u1", identity{ID: "u1", Admin: true}, time.Minute))

	v, err := c.Get(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, identity{ID: "u1", Admin: true}, v)

	n, err := client.Exists(ctx, "awesome-test:u1").Result()
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	require.NoError(t, c.Delete(ctx, "u1"))
	_, err = c.Get(ctx, "u1")
	require.ErrorIs(t, err, cache.ErrNotFound)
}
