package internal

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// IdentityKey is the context key used to store the authenticated Identity.
type IdentityKey struct{}

// BodyKey is the context key used to store a pre-parsed request body.
type BodyKey struct{}

// Component is the interface for renderable templates.
// This is compatible with templ.Component.
type Component interface {
	Render(ctx context.Context, w io.Writer) error
}

// Identity is the principal attached to a request by the auth middleware.
type Identity interface {
	UserID() string
	IsAdmin() bool
}

// Context provides request/response access and helper methods.
// It also implements context.Context by delegating to the underlying request context.
type Context interface {
	context.Context

	// Request returns the underlying *http.Request.
	Request() *http.Request

	// Response returns the underlying http.ResponseWriter.
	Response() http.ResponseWriter

	// Context returns the request's context.Context.
	Context() context.Context

	// Param returns the URL parameter value by name.
	// Returns empty string if the parameter doesn't exist.
	Param(name string) string

	// Query returns the query parameter value by name.
	// Returns empty string if the parameter doesn't exist.
	Query(name string) string

	// Form returns the form value by name.
	Form(name string) string

	// Header returns the request header value by name.
	Header(name string) string

	// SetHeader sets a response header.
	SetHeader(name, value string)

	// Cookie returns a plain cookie value.
	Cookie(name string) (string, error)

	// Identity returns the authenticated principal, or nil for anonymous requests.
	Identity() Identity

	// SetIdentity attaches a principal to the request.
	SetIdentity(id Identity)

	// UserID returns the authenticated user's ID, or empty string.
	UserID() string

	// IsAuthenticated returns true if an identity is attached.
	IsAuthenticated() bool

	// IsCurrentUser returns true if the authenticated user's ID matches the given id.
	IsCurrentUser(id string) bool

	// JSON writes a JSON response with the given status code.
	JSON(code int, v any) error

	// String writes a plain text response with the given status code.
	String(code int, s string) error

	// HTML writes an HTML response with the given status code.
	HTML(code int, s string) error

	// Blob writes raw bytes with the given content type.
	Blob(code int, contentType string, b []byte) error

	// NoContent writes a response with no body.
	NoContent(code int) error

	// Redirect redirects to the given URL with the given status code.
	Redirect(code int, url string) error

	// Error creates and returns an HTTPError without writing a response.
	Error(code int, message string, opts ...HTTPErrorOption) *HTTPError

	// Render renders a component with the given status code.
	Render(code int, component Component) error

	// Written returns true if a response has already been written.
	Written() bool

	// ResponseWriter returns the wrapped ResponseWriter.
	ResponseWriter() *ResponseWriter

	// Logger returns the logger for advanced usage.
	Logger() *slog.Logger

	LogDebug(msg string, attrs ...any)
	LogInfo(msg string, attrs ...any)
	LogWarn(msg string, attrs ...any)
	LogError(msg string, attrs ...any)

	// Set stores a value in the request context.
	// The value can be retrieved using Get or from c.Context().Value(key).
	Set(key any, value any)

	// Get retrieves a value from the request context.
	// Returns nil if the key is not found.
	Get(key any) any
}

// Content types written by the response helpers.
const (
	contentTypeJSON   = "application/json;charset=utf-8"
	contentTypeHTML   = "text/html;charset=utf-8"
	contentTypeText   = "text/plain;charset=utf-8"
	contentTypeBinary = "application/octet-stream"
)

// requestContext implements the Context interface.
type requestContext struct {
	response       http.ResponseWriter
	request        *http.Request
	responseWriter *ResponseWriter
	logger         *slog.Logger
}

func newContext(w http.ResponseWriter, r *http.Request, app *App) *requestContext {
	rw, ok := w.(*ResponseWriter)
	if !ok {
		rw = NewResponseWriter(w)
	}

	return &requestContext{
		request:        r,
		response:       rw,
		responseWriter: rw,
		logger:         app.logger,
	}
}

func (c *requestContext) Request() *http.Request {
	return c.request
}

func (c *requestContext) Response() http.ResponseWriter {
	return c.response
}

func (c *requestContext) Context() context.Context {
	return c.request.Context()
}

func (c *requestContext) Deadline() (time.Time, bool) {
	return c.request.Context().Deadline()
}

func (c *requestContext) Done() <-chan struct{} {
	return c.request.Context().Done()
}

func (c *requestContext) Err() error {
	return c.request.Context().Err()
}

func (c *requestContext) Value(key any) any {
	return c.request.Context().Value(key)
}

func (c *requestContext) Param(name string) string {
	return chi.URLParam(c.request, name)
}

func (c *requestContext) Query(name string) string {
	return c.request.URL.Query().Get(name)
}

func (c *requestContext) Form(name string) string {
	return c.request.FormValue(name)
}

func (c *requestContext) Header(name string) string {
	return c.request.Header.Get(name)
}

func (c *requestContext) SetHeader(name, value string) {
	c.response.Header().Set(name, value)
}

func (c *requestContext) Cookie(name string) (string, error) {
	ck, err := c.request.Cookie(name)
	if err != nil {
		return "", err
	}
	return ck.Value, nil
}

func (c *requestContext) Identity() Identity {
	id, _ := c.Get(IdentityKey{}).(Identity)
	return id
}

func (c *requestContext) SetIdentity(id Identity) {
	c.Set(IdentityKey{}, id)
}

func (c *requestContext) UserID() string {
	if id := c.Identity(); id != nil {
		return id.UserID()
	}
	return ""
}

func (c *requestContext) IsAuthenticated() bool {
	return c.UserID() != ""
}

func (c *requestContext) IsCurrentUser(id string) bool {
	uid := c.UserID()
	return uid != "" && uid == id
}

func (c *requestContext) JSON(code int, v any) error {
	c.response.Header().Set("Content-Type", contentTypeJSON)
	c.response.WriteHeader(code)
	enc := json.NewEncoder(c.response)
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func (c *requestContext) String(code int, s string) error {
	return c.Blob(code, contentTypeText, []byte(s))
}

func (c *requestContext) HTML(code int, s string) error {
	return c.Blob(code, contentTypeHTML, []byte(s))
}

func (c *requestContext) Blob(code int, contentType string, b []byte) error {
	c.response.Header().Set("Content-Type", contentType)
	c.response.WriteHeader(code)
	_, err := c.response.Write(b)
	return err
}

func (c *requestContext) NoContent(code int) error {
	c.response.WriteHeader(code)
	return nil
}

func (c *requestContext) Redirect(code int, url string) error {
	http.Redirect(c.response, c.request, url, code)
	return nil
}

func (c *requestContext) Error(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	err := NewHTTPError(code, message)
	for _, opt := range opts {
		opt(err)
	}
	return err
}

func (c *requestContext) Render(code int, component Component) error {
	c.response.Header().Set("Content-Type", contentTypeHTML)
	c.response.WriteHeader(code)
	return component.Render(c.request.Context(), c.response)
}

func (c *requestContext) Written() bool {
	return c.responseWriter.Written()
}

func (c *requestContext) ResponseWriter() *ResponseWriter {
	return c.responseWriter
}

func (c *requestContext) Logger() *slog.Logger {
	return c.logger
}

func (c *requestContext) LogDebug(msg string, attrs ...any) {
	c.logger.DebugContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogInfo(msg string, attrs ...any) {
	c.logger.InfoContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogWarn(msg string, attrs ...any) {
	c.logger.WarnContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogError(msg string, attrs ...any) {
	c.logger.ErrorContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) Set(key, value any) {
	ctx := context.WithValue(c.request.Context(), key, value)
	c.request = c.request.WithContext(ctx)
}

func (c *requestContext) Get(key any) any {
	return c.request.Context().Value(key)
}
