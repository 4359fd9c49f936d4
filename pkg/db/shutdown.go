package db

import (
	"context"
	"errors"
)

// Healthcheck returns a readiness check that pings the pool.
func Healthcheck(pool *Pool) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if err := pool.PingContext(ctx); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}

// Shutdown returns a function that closes the connection pool.
// Use with awesome.ShutdownHook().
//
// Example:
//
//	app := awesome.New(
//	    awesome.ShutdownHook(db.Shutdown(pool)),
//	)
func Shutdown(pool *Pool) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		return pool.Close()
	}
}
