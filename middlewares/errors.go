package middlewares

import (
	"errors"
	"fmt"
	"time"
)

// PanicError represents a recovered panic.
type PanicError struct {
	Value any    // The panic value
	Stack []byte // Stack trace (nil if disabled)
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// RateLimitError is returned when a client exceeds its request budget.
type RateLimitError struct {
	Key        string        // Limiter key, usually the client IP
	RetryAfter time.Duration // Time until the next token is available
}

// Error implements the error interface.
func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded for %s, retry after %s", e.Key, e.RetryAfter)
}

// IsPanicError returns true if the error is a PanicError.
func IsPanicError(err error) bool {
	var pe *PanicError
	return errors.As(err, &pe)
}

// IsRateLimitError returns true if the error is a RateLimitError.
func IsRateLimitError(err error) bool {
	var re *RateLimitError
	return errors.As(err, &re)
}

// AsPanicError extracts the PanicError from an error if present.
func AsPanicError(err error) (*PanicError, bool) {
	var pe *PanicError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// AsRateLimitError extracts the RateLimitError from an error if present.
func AsRateLimitError(err error) (*RateLimitError, bool) {
	var re *RateLimitError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}
