package cache

import "time"

// Option configures a cache backend.
type Option func(*options)

type options struct {
	prefix          string
	defaultTTL      time.Duration
	cleanupInterval time.Duration
	maxEntries      int
}

func newOptions(opts []Option) *options {
	o := &options{
		defaultTTL:      time.Hour,
		cleanupInterval: time.Minute,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithDefaultTTL sets the expiration used when Set is called with a zero TTL.
// Default: 1 hour.
func WithDefaultTTL(d time.Duration) Option {
	return func(o *options) {
		o.defaultTTL = d
	}
}

// WithPrefix namespaces Redis keys as "{prefix}:{key}".
func WithPrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = prefix
	}
}

// WithCleanupInterval sets how often the memory cache drops expired
// entries. Zero disables the background sweep.
func WithCleanupInterval(d time.Duration) Option {
	return func(o *options) {
		o.cleanupInterval = d
	}
}

// WithMaxEntries caps the memory cache; the entry closest to expiry is
// evicted first. Zero means unlimited.
func WithMaxEntries(n int) Option {
	return func(o *options) {
		o.maxEntries = n
	}
}

// expiry resolves ttl against the default. The zero time means never.
func (o *options) expiry(ttl time.Duration) time.Time {
	if ttl == 0 {
		ttl = o.defaultTTL
	}
	if ttl < 0 {
		return time.Time{}
	}
	return time.Now().Add(ttl)
}
