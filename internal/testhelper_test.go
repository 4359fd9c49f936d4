package internal_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmitrymomot/awesome/internal"
)

// captureHandler registers fn on GET and POST /{id}.
type captureHandler struct {
	fn func(c internal.Context)
}

func (h *captureHandler) Routes(r internal.Router) {
	handle := func(c internal.Context) error {
		h.fn(c)
		return nil
	}
	r.GET("/{id}", handle)
	r.POST("/{id}", handle)
	r.GET("/", handle)
}

// requestVia creates an App and serves req through it, calling fn with the handler context.
func requestVia(t *testing.T, req *http.Request, opts []internal.Option, fn func(c internal.Context)) *httptest.ResponseRecorder {
	t.Helper()

	opts = append(opts, internal.WithHandlers(&captureHandler{fn: fn}))
	app := internal.New(opts...)

	w := httptest.NewRecorder()
	app.ServeHTTP(w, req)
	return w
}

// serve builds an App from opts and serves req.
func serve(t *testing.T, req *http.Request, opts ...internal.Option) *httptest.ResponseRecorder {
	t.Helper()

	w := httptest.NewRecorder()
	internal.New(opts...).ServeHTTP(w, req)
	return w
}

type testIdentity struct {
	id    string
	admin bool
}

func (i testIdentity) UserID() string { return i.id }
func (i testIdentity) IsAdmin() bool  { return i.admin }

// withIdentity is a global middleware attaching a fixed identity.
func withIdentity(id internal.Identity) internal.Option {
	return internal.WithMiddleware(func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			c.SetIdentity(id)
			return next(c)
		}
	})
}
