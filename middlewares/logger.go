package middlewares

import (
	"time"

	"github.com/dmitrymomot/awesome/internal"
)

// Logger returns middleware that logs every incoming request as
// "Request: METHOD PATH" and, once the chain returns, its status and duration.
func Logger() internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			r := c.Request()
			c.LogInfo("Request: " + r.Method + " " + r.URL.Path)

			start := time.Now()
			err := next(c)

			c.LogDebug("request completed",
				"status", c.ResponseWriter().Status(),
				"duration", time.Since(start),
			)
			return err
		}
	}
}
