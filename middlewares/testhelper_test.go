package middlewares_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/awesome/internal"
	"github.com/dmitrymomot/awesome/pkg/logger"
)

type testContext struct {
	response *internal.ResponseWriter
	request  *http.Request
	logger   *slog.Logger
	values   map[any]any
}

func newTestContext(w http.ResponseWriter, r *http.Request) *testContext {
	return &testContext{
		response: internal.NewResponseWriter(w),
		request:  r,
		logger:   logger.NewNope(),
		values:   make(map[any]any),
	}
}

// withLogger replaces the discard logger, e.g. with one writing to a buffer.
func (c *testContext) withLogger(l *slog.Logger) *testContext {
	c.logger = l
	return c
}

func (c *testContext) Request() *http.Request        { return c.request }
func (c *testContext) Response() http.ResponseWriter { return c.response }
func (c *testContext) Context() context.Context      { return c.request.Context() }
func (c *testContext) Param(name string) string      { return "" }
func (c *testContext) Query(name string) string      { return c.request.URL.Query().Get(name) }
func (c *testContext) Form(name string) string       { return c.request.FormValue(name) }
func (c *testContext) Header(name string) string     { return c.request.Header.Get(name) }
func (c *testContext) SetHeader(name, value string)  { c.response.Header().Set(name, value) }

func (c *testContext) Cookie(name string) (string, error) {
	cookie, err := c.request.Cookie(name)
	if err != nil {
		return "", err
	}
	return cookie.Value, nil
}

func (c *testContext) Identity() internal.Identity {
	id, _ := c.Get(internal.IdentityKey{}).(internal.Identity)
	return id
}

func (c *testContext) SetIdentity(id internal.Identity) { c.Set(internal.IdentityKey{}, id) }

func (c *testContext) UserID() string {
	if id := c.Identity(); id != nil {
		return id.UserID()
	}
	return ""
}

func (c *testContext) IsAuthenticated() bool        { return c.UserID() != "" }
func (c *testContext) IsCurrentUser(id string) bool { return id != "" && c.UserID() == id }

func (c *testContext) JSON(code int, v any) error {
	c.response.Header().Set("Content-Type", "application/json;charset=utf-8")
	c.response.WriteHeader(code)
	return json.NewEncoder(c.response).Encode(v)
}

func (c *testContext) String(code int, s string) error {
	return c.Blob(code, "text/plain;charset=utf-8", []byte(s))
}

func (c *testContext) HTML(code int, s string) error {
	return c.Blob(code, "text/html;charset=utf-8", []byte(s))
}

func (c *testContext) Blob(code int, contentType string, b []byte) error {
	c.response.Header().Set("Content-Type", contentType)
	c.response.WriteHeader(code)
	_, err := c.response.Write(b)
	return err
}

func (c *testContext) NoContent(code int) error { c.response.WriteHeader(code); return nil }

func (c *testContext) Redirect(code int, url string) error {
	http.Redirect(c.response, c.request, url, code)
	return nil
}

func (c *testContext) Error(code int, message string, opts ...internal.HTTPErrorOption) *internal.HTTPError {
	return internal.NewHTTPError(code, message, opts...)
}

func (c *testContext) Render(code int, component internal.Component) error {
	c.response.Header().Set("Content-Type", "text/html;charset=utf-8")
	c.response.WriteHeader(code)
	return component.Render(c.request.Context(), c.response)
}

func (c *testContext) Written() bool                            { return c.response.Written() }
func (c *testContext) ResponseWriter() *internal.ResponseWriter { return c.response }
func (c *testContext) Logger() *slog.Logger                     { return c.logger }
func (c *testContext) LogDebug(msg string, attrs ...any)        { c.logger.Debug(msg, attrs...) }
func (c *testContext) LogInfo(msg string, attrs ...any)         { c.logger.Info(msg, attrs...) }
func (c *testContext) LogWarn(msg string, attrs ...any)         { c.logger.Warn(msg, attrs...) }
func (c *testContext) LogError(msg string, attrs ...any)        { c.logger.Error(msg, attrs...) }

func (c *testContext) Set(key, value any) {
	c.values[key] = value
	// Also store in request context for context extractors
	ctx := context.WithValue(c.request.Context(), key, value)
	c.request = c.request.WithContext(ctx)
}

func (c *testContext) Get(key any) any {
	return c.values[key]
}

func (c *testContext) Deadline() (time.Time, bool) { return c.request.Context().Deadline() }
func (c *testContext) Done() <-chan struct{}       { return c.request.Context().Done() }
func (c *testContext) Err() error                  { return c.request.Context().Err() }
func (c *testContext) Value(key any) any           { return c.request.Context().Value(key) }

type testIdentity struct {
	id    string
	admin bool
}

func (i testIdentity) UserID() string { return i.id }
func (i testIdentity) IsAdmin() bool  { return i.admin }
