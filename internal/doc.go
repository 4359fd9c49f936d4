// Package internal provides the core types and implementation of the awesome framework.
//
// This package is internal and should not be used directly. Import "github.com/dmitrymomot/awesome"
// instead, which re-exports the public API.
//
// # Core Types
//
//   - App: Orchestrates the application lifecycle, HTTP routing, and graceful shutdown
//   - Context: Provides request/response access, identity, and helper methods
//   - Router: Interface handlers use to declare routes and endpoints
//   - Endpoint: Route declaration with an explicit parameter schema
//   - Middleware: Wraps handlers to add cross-cutting concerns like auth or logging
//   - ErrorHandler: Custom error handling function for handler errors
//
// # Context as context.Context
//
// Context embeds context.Context, so it can be passed directly to any function
// that expects a standard library context:
//
//	func (h *Handler) getBlog(c internal.Context, args internal.Args) (any, error) {
//	    b, err := h.blogs.Find(c, args.String("id"))
//	    if err != nil {
//	        return nil, err
//	    }
//	    return b.Map(), nil
//	}
//
// # Endpoints
//
// Each Endpoint names its parameters and their sources. At registration the
// declaration is validated: parameter names must be unique, path parameters
// must appear in the route pattern, and a request parameter must come after
// every path parameter. Invalid declarations panic.
//
// Per request the binder parses the query string (GET) or the body (POST),
// keeps only the declared names unless the endpoint is catch-all, merges
// route variables over them and fills defaults for optional parameters.
//
// # Result Coercion
//
// Endpoints return plain values. When a response middleware installs a
// Result slot under ResultKey the value is stored there. Otherwise Coerce
// writes it directly using the renderer from WithRenderer.
//
// # Identity
//
// The auth middleware attaches an Identity with SetIdentity. Endpoints and
// templates read it through Identity, UserID and IsAuthenticated.
//
// # Error Handling
//
// Errors returned from handlers trigger the ErrorHandler. Without one, an
// HTTPError is written with its code and message, anything else is logged
// and answered with 500.
//
// # Server Runtime
//
//	err := app.Run("127.0.0.1:9000",
//	    internal.Logger(log),
//	    internal.ServerTimeouts(15*time.Second, 30*time.Second, 2*time.Minute),
//	)
package internal
