// Package middlewares provides the request pipeline of the awesome blog.
//
// # Pipeline
//
// The stages are meant to be installed in this order:
//
//	awesome.WithMiddleware(
//	    middlewares.RequestID(), // assign ID for all subsequent logging
//	    middlewares.Recover(),   // catch panics from everything below
//	    middlewares.Logger(),    // "Request: METHOD PATH"
//	    middlewares.Auth(middlewares.AuthConfig{Resolver: auth}),
//	    middlewares.Data(),      // parse POST bodies once
//	    middlewares.Response(templates),
//	)
//
// # Request ID
//
// RequestID reuses a well-formed ID from X-Request-ID or X-Correlation-ID,
// or generates a UUID. Use RequestIDExtractor with WithLogger to add
// request_id to every log entry, and UserIDExtractor for user_id:
//
//	awesome.WithLogger("awesome",
//	    middlewares.RequestIDExtractor(),
//	    middlewares.UserIDExtractor(),
//	)
//
// # Auth
//
// Auth resolves the session cookie into an Identity through an
// IdentityResolver. Requests under /manage/ without an admin identity are
// redirected to /signin.
//
// # Response
//
// Response installs the result slot used by endpoints and coerces the
// stored value into a response: strings become HTML, "redirect:" strings
// redirect, maps become JSON or a rendered template, and so on.
//
// # Errors
//
// Recover returns a *PanicError and RateLimit returns a *RateLimitError.
// Both are meant for the app's ErrorHandler:
//
//	awesome.WithErrorHandler(func(c awesome.Context, err error) error {
//	    switch {
//	    case middlewares.IsRateLimitError(err):
//	        return c.String(429, "Too Many Requests")
//	    case middlewares.IsPanicError(err):
//	        return c.String(500, "Internal Server Error")
//	    default:
//	        return c.String(500, err.Error())
//	    }
//	})
package middlewares
