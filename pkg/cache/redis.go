package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is a cache backed by Redis. Values are stored JSON encoded unless
// another Marshaler is given.
type Redis[V any] struct {
	client    redis.UniversalClient
	opts      *options
	marshaler Marshaler[V]
}

// NewRedis creates a Redis-backed cache.
// The client should be obtained from pkg/redis.Open.
//
// Example:
//
//	c := cache.NewRedis[*User](client, nil,
//	    cache.WithPrefix("users"),
//	    cache.WithDefaultTTL(30 * time.Minute),
//	)
func NewRedis[V any](client redis.UniversalClient, m Marshaler[V], opts ...Option) *Redis[V] {
	if m == nil {
		m = jsonMarshaler[V]{}
	}
	return &Redis[V]{
		client:    client,
		opts:      newOptions(opts),
		marshaler: m,
	}
}

func (r *Redis[V]) Get(ctx context.Context, key string) (V, error) {
	var zero V

	data, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return zero, ErrNotFound
		}
		return zero, err
	}
	return r.marshaler.Unmarshal(data)
}

func (r *Redis[V]) Set(ctx context.Context, key string, value V, ttl time.Duration) error {
	data, err := r.marshaler.Marshal(value)
	if err != nil {
		return err
	}

	if ttl == 0 {
		ttl = r.opts.defaultTTL
	}
	// Redis reads 0 as no expiration.
	return r.client.Set(ctx, r.key(key), data, max(ttl, 0)).Err()
}

func (r *Redis[V]) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.key(key)).Err()
}

// Close is a no-op. The client is closed by pkg/redis.Shutdown.
func (r *Redis[V]) Close() error {
	return nil
}

func (r *Redis[V]) key(key string) string {
	if r.opts.prefix == "" {
		return key
	}
	return r.opts.prefix + ":" + key
}

var _ Cache[any] = (*Redis[any])(nil)
