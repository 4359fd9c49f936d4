package internal

// Handler declares routes on a router.
//
// Example:
//
//	type Pages struct {
//	    blogs *orm.Table[Blog, *Blog]
//	}
//
//	func (h *Pages) Routes(r awesome.Router) {
//	    r.Handle(awesome.GET("/", h.index, awesome.QueryParam("page", awesome.Optional("1"))))
//	    r.GET("/health", h.ping)
//	}
type Handler interface {
	Routes(r Router)
}

// HandlerFunc is the signature for route handlers.
// It receives a Context and returns an error.
// Returning a non-nil error triggers the error handler.
type HandlerFunc func(c Context) error

// Middleware wraps a HandlerFunc to add cross-cutting concerns.
// Middleware can inspect/modify the request, short-circuit processing,
// or wrap the response.
//
// Example:
//
//	func Admin(next awesome.HandlerFunc) awesome.HandlerFunc {
//	    return func(c awesome.Context) error {
//	        if id := c.Identity(); id == nil || !id.IsAdmin() {
//	            return c.Redirect(302, "/signin")
//	        }
//	        return next(c)
//	    }
//	}
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler handles errors returned from handlers.
type ErrorHandler func(Context, error) error
