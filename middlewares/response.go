package middlewares

import (
	"fmt"

	"github.com/dmitrymomot/awesome/internal"
)

// Response returns the terminal stage of the pipeline. It installs a result
// slot for the endpoint adapter and, once the chain returns, turns the stored
// value into an HTTP response with internal.Coerce. Template results are
// rendered with renderer, which may be nil when no templates are used.
//
// Handlers that write the response themselves are passed through.
func Response(renderer internal.Renderer) internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			res := &internal.Result{}
			c.Set(internal.ResultKey{}, res)

			if err := next(c); err != nil {
				return err
			}
			if c.Written() {
				return nil
			}
			if res.Set {
				c.LogDebug("response", "type", fmt.Sprintf("%T", res.Value))
			}
			return internal.Coerce(c, res.Value, renderer)
		}
	}
}
