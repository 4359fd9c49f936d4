package middlewares

import (
	"net/http"

	"github.com/dmitrymomot/awesome/internal"
)

// Data returns middleware that parses JSON and form bodies of POST requests
// once and stores the result under internal.BodyKey for the endpoint binder.
// Other methods and content types pass through untouched.
func Data() internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			r := c.Request()
			if r.Method != http.MethodPost {
				return next(c)
			}

			ct := r.Header.Get("Content-Type")
			if !internal.IsJSON(ct) && !internal.IsForm(ct) {
				return next(c)
			}

			data, err := internal.ParseBody(r)
			if err != nil {
				return err
			}
			c.LogDebug("request body parsed", "content_type", ct, "fields", len(data))
			c.Set(internal.BodyKey{}, data)

			return next(c)
		}
	}
}
