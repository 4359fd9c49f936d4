package middlewares

import (
	"math"
	"net"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/dmitrymomot/awesome/internal"
)

// defaultMaxLimiters caps the number of tracked keys before the map is reset.
const defaultMaxLimiters = 10000

// RateLimitConfig configures the rate limit middleware.
type RateLimitConfig struct {
	KeyFunc     func(c internal.Context) string // Limiter key (default: client IP)
	Rate        rate.Limit                      // Sustained requests per second
	Burst       int                             // Bucket size
	MaxLimiters int                             // Tracked keys before reset (default: 10000)
}

// RateLimitOption configures RateLimitConfig.
type RateLimitOption func(*RateLimitConfig)

// WithRateLimitKey sets the function deriving the limiter key.
func WithRateLimitKey(fn func(c internal.Context) string) RateLimitOption {
	return func(cfg *RateLimitConfig) {
		if fn != nil {
			cfg.KeyFunc = fn
		}
	}
}

// WithRateLimitMaxLimiters sets how many keys are tracked before the limiter map is reset.
func WithRateLimitMaxLimiters(n int) RateLimitOption {
	return func(cfg *RateLimitConfig) {
		if n > 0 {
			cfg.MaxLimiters = n
		}
	}
}

// PerMinute converts a per-minute budget to a rate.Limit.
func PerMinute(n int) rate.Limit {
	return rate.Every(time.Minute / time.Duration(max(n, 1)))
}

// RateLimit returns middleware that throttles requests with one token
// bucket per key. Exceeding the budget sets Retry-After and returns a
// *RateLimitError for the app's ErrorHandler.
//
// Example:
//
//	r.Handle(awesome.POST("/api/authenticate", h.authenticate, ...),
//	    middlewares.RateLimit(middlewares.PerMinute(10), 5))
func RateLimit(limit rate.Limit, burst int, opts ...RateLimitOption) internal.Middleware {
	cfg := &RateLimitConfig{
		KeyFunc:     ClientIP,
		Rate:        limit,
		Burst:       max(burst, 1),
		MaxLimiters: defaultMaxLimiters,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	var (
		mu       sync.Mutex
		limiters = make(map[string]*rate.Limiter)
	)
	get := func(key string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()

		l, ok := limiters[key]
		if !ok {
			if len(limiters) >= cfg.MaxLimiters {
				limiters = make(map[string]*rate.Limiter)
			}
			l = rate.NewLimiter(cfg.Rate, cfg.Burst)
			limiters[key] = l
		}
		return l
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			key := cfg.KeyFunc(c)
			res := get(key).Reserve()
			if delay := res.Delay(); delay > 0 {
				res.Cancel()
				c.SetHeader("Retry-After", strconv.Itoa(int(math.Ceil(delay.Seconds()))))
				c.LogWarn("rate limit exceeded",
					"key", key,
					"method", c.Request().Method,
					"path", c.Request().URL.Path,
				)
				return &RateLimitError{Key: key, RetryAfter: delay}
			}
			return next(c)
		}
	}
}

// ClientIP returns the host part of the request's remote address.
func ClientIP(c internal.Context) string {
	addr := c.Request().RemoteAddr
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}
