package awesome

import (
	"context"
	"io/fs"
	"log/slog"
	"time"

	"github.com/dmitrymomot/awesome/internal"
	"github.com/dmitrymomot/awesome/pkg/health"
	"github.com/dmitrymomot/awesome/pkg/logger"
)

// Type aliases - public API
type (
	// App orchestrates the application lifecycle.
	// It manages HTTP routing, middleware, and graceful shutdown.
	App = internal.App

	// Router is the interface handlers use to declare routes.
	Router = internal.Router

	// Context provides request/response access and helper methods.
	Context = internal.Context

	// Identity is the principal attached to a request by the auth middleware.
	Identity = internal.Identity

	// Handler declares routes on a router.
	Handler = internal.Handler

	// HandlerFunc is the signature for route handlers.
	HandlerFunc = internal.HandlerFunc

	// Middleware wraps a HandlerFunc to add cross-cutting concerns.
	Middleware = internal.Middleware

	// ErrorHandler handles errors returned from handlers.
	ErrorHandler = internal.ErrorHandler

	// Option configures the application.
	Option = internal.Option

	// RunOption configures the server runtime.
	RunOption = internal.RunOption

	// HealthOption configures health check endpoints.
	HealthOption = internal.HealthOption

	// Component is the interface for renderable templates.
	Component = internal.Component

	// Renderer resolves template results into components.
	Renderer = internal.Renderer

	// Responder is a result that writes its own response.
	Responder = internal.Responder

	// Endpoint is a route declaration with an explicit parameter schema.
	Endpoint = internal.Endpoint

	// EndpointFunc is a business function bound to an Endpoint.
	EndpointFunc = internal.EndpointFunc

	// Param declares one argument of an endpoint function.
	Param = internal.Param

	// ParamOption configures a Param.
	ParamOption = internal.ParamOption

	// Args holds the bound arguments of an endpoint call.
	Args = internal.Args

	// APIError is a domain error rendered as an error payload.
	APIError = internal.APIError

	// HTTPError represents an HTTP error with all data needed for rendering.
	HTTPError = internal.HTTPError

	// HTTPErrorOption configures an HTTPError.
	HTTPErrorOption = internal.HTTPErrorOption

	// RendererFunc adapts a function to Renderer.
	RendererFunc = internal.RendererFunc

	// ResponseWriter wraps http.ResponseWriter to track the written state.
	ResponseWriter = internal.ResponseWriter

	// ExtractorSource reads a credential or value from the request.
	ExtractorSource = internal.ExtractorSource

	// ContextExtractor extracts a slog attribute from context.
	// Used with WithLogger to add request-scoped values to logs.
	ContextExtractor = logger.ContextExtractor
)

// Result conventions.
const (
	// TemplateKey names the template of a mapping result.
	TemplateKey = internal.TemplateKey
	// UserKey holds the current Identity in template data.
	UserKey = internal.UserKey
	// RedirectPrefix marks a string result as a redirect target.
	RedirectPrefix = internal.RedirectPrefix
)

// Parameter sources.
const (
	SourcePath    = internal.SourcePath
	SourceQuery   = internal.SourceQuery
	SourceBody    = internal.SourceBody
	SourceRequest = internal.SourceRequest
)

// New creates a new application with the given options.
// The App is immutable after creation.
//
// Example:
//
//	app := awesome.New(
//	    awesome.WithMiddleware(middlewares.Logger(), middlewares.Response(tpl)),
//	    awesome.WithHandlers(blog.NewHandler(store, auth)),
//	)
//
//	err := app.Run("127.0.0.1:9000", awesome.Logger(log))
func New(opts ...Option) *App {
	return internal.New(opts...)
}

// Endpoints

// GET declares a GET endpoint.
func GET(path string, fn EndpointFunc, params ...Param) Endpoint {
	return internal.GET(path, fn, params...)
}

// POST declares a POST endpoint.
func POST(path string, fn EndpointFunc, params ...Param) Endpoint {
	return internal.POST(path, fn, params...)
}

// PathParam declares a route variable.
func PathParam(name string) Param { return internal.PathParam(name) }

// QueryParam declares a query string parameter, required unless Optional is given.
func QueryParam(name string, opts ...ParamOption) Param { return internal.QueryParam(name, opts...) }

// BodyParam declares a body parameter, required unless Optional is given.
func BodyParam(name string, opts ...ParamOption) Param { return internal.BodyParam(name, opts...) }

// RequestArg declares an argument receiving the *http.Request.
func RequestArg(name string) Param { return internal.RequestArg(name) }

// Required marks a parameter as mandatory.
func Required() ParamOption { return internal.Required() }

// Optional makes a parameter optional with the given default.
func Optional(def any) ParamOption { return internal.Optional(def) }

// Extractor sources

// FromCookie reads a plain cookie.
func FromCookie(name string) ExtractorSource { return internal.FromCookie(name) }

// FromHeader reads a request header.
func FromHeader(name string) ExtractorSource { return internal.FromHeader(name) }

// FromBearerToken reads the token of an "Authorization: Bearer" header.
func FromBearerToken() ExtractorSource { return internal.FromBearerToken() }

// Domain errors

// NewAPIError creates an APIError of an arbitrary kind, e.g. "register:failed".
func NewAPIError(kind, field, message string) *APIError {
	return internal.NewAPIError(kind, field, message)
}

// APIValueError reports invalid or missing input for field.
func APIValueError(field, message string) *APIError {
	return internal.APIValueError(field, message)
}

// APIResourceNotFoundError reports that the resource named by field does not exist.
func APIResourceNotFoundError(field, message string) *APIError {
	return internal.APIResourceNotFoundError(field, message)
}

// APIPermissionError reports that the caller may not perform the operation.
func APIPermissionError(message string) *APIError {
	return internal.APIPermissionError(message)
}

// HTTP errors

// ErrBadRequest creates a 400 Bad Request error.
func ErrBadRequest(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrBadRequest(message, opts...)
}

// ErrNotFound creates a 404 Not Found error.
func ErrNotFound(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrNotFound(message, opts...)
}

// ErrInternal creates a 500 Internal Server Error.
func ErrInternal(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrInternal(message, opts...)
}

// AsHTTPError extracts an HTTPError from err, or returns nil.
func AsHTTPError(err error) *HTTPError {
	return internal.AsHTTPError(err)
}

// App options

// WithMiddleware adds global middleware to the application.
// Middleware is applied in the order provided.
func WithMiddleware(mw ...Middleware) Option {
	return internal.WithMiddleware(mw...)
}

// WithHandlers registers handlers that declare routes.
// Each handler's Routes method is called during setup.
func WithHandlers(h ...Handler) Option {
	return internal.WithHandlers(h...)
}

// WithEndpoints registers endpoints directly.
func WithEndpoints(e ...Endpoint) Option {
	return internal.WithEndpoints(e...)
}

// WithRenderer sets the renderer used when no response middleware is installed.
func WithRenderer(r Renderer) Option {
	return internal.WithRenderer(r)
}

// WithStaticFiles mounts a static file handler at the given pattern.
// Directory listings are disabled. Files are served with default cache headers.
//
// Example:
//
//	//go:embed static
//	var assets embed.FS
//
//	awesome.New(
//	    awesome.WithStaticFiles("/static/", assets, "static"),
//	)
func WithStaticFiles(pattern string, fsys fs.FS, subDir string) Option {
	return internal.WithStaticFiles(pattern, fsys, subDir)
}

// WithErrorHandler sets a custom error handler for handler errors.
// Called when a handler returns a non-nil error.
func WithErrorHandler(h ErrorHandler) Option {
	return internal.WithErrorHandler(h)
}

// WithNotFoundHandler sets a custom 404 handler.
func WithNotFoundHandler(h HandlerFunc) Option {
	return internal.WithNotFoundHandler(h)
}

// WithMethodNotAllowedHandler sets a custom 405 handler.
func WithMethodNotAllowedHandler(h HandlerFunc) Option {
	return internal.WithMethodNotAllowedHandler(h)
}

// WithHealthChecks enables health check endpoints with optional configuration.
// Liveness (/health/live): Always returns OK if process is running.
// Readiness (/health/ready): Runs all configured checks.
//
// Example:
//
//	awesome.WithHealthChecks(
//	    awesome.WithReadinessCheck("db", db.Healthcheck(pool)),
//	)
func WithHealthChecks(opts ...HealthOption) Option {
	return internal.WithHealthChecks(opts...)
}

// WithLogger creates a logger with a component name and optional extractors.
// The component name is added to every log entry for easy filtering.
func WithLogger(component string, extractors ...ContextExtractor) Option {
	return internal.WithLogger(component, extractors...)
}

// WithCustomLogger sets a fully custom logger.
func WithCustomLogger(l *slog.Logger) Option {
	return internal.WithCustomLogger(l)
}

// Health check options

// WithLivenessPath sets a custom liveness endpoint path.
// Defaults to "/health/live".
func WithLivenessPath(path string) HealthOption {
	return internal.WithLivenessPath(path)
}

// WithReadinessPath sets a custom readiness endpoint path.
// Defaults to "/health/ready".
func WithReadinessPath(path string) HealthOption {
	return internal.WithReadinessPath(path)
}

// WithReadinessCheck adds a named readiness check.
// Checks run in parallel during readiness probe.
func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return internal.WithReadinessCheck(name, fn)
}

// Run options

// Address sets the HTTP server address.
// Defaults to "127.0.0.1:9000".
func Address(addr string) RunOption {
	return internal.Address(addr)
}

// Logger sets the server lifecycle logger.
// If nil, logging is disabled.
func Logger(l *slog.Logger) RunOption {
	return internal.Logger(l)
}

// ShutdownTimeout sets the timeout for graceful shutdown.
// This applies to both the HTTP server and shutdown hooks.
func ShutdownTimeout(d time.Duration) RunOption {
	return internal.ShutdownTimeout(d)
}

// ServerTimeouts sets the read, write and idle timeouts of the HTTP server.
func ServerTimeouts(read, write, idle time.Duration) RunOption {
	return internal.ServerTimeouts(read, write, idle)
}

// ShutdownHook registers a cleanup function to run during shutdown.
// Hooks are called in the order they were registered.
// Each hook receives a context with the shutdown timeout.
//
// Example:
//
//	awesome.ShutdownHook(db.Shutdown(pool))
func ShutdownHook(fn func(context.Context) error) RunOption {
	return internal.ShutdownHook(fn)
}

// WithContext sets a custom base context for signal handling.
// Defaults to context.Background() if not set.
func WithContext(ctx context.Context) RunOption {
	return internal.WithContext(ctx)
}

// Context helpers

// PathValue converts a route variable to T.
func PathValue[T internal.Scalar](c Context, name string) T {
	return internal.PathValue[T](c, name)
}

// QueryValueOr converts a query parameter to T, returning fallback when it
// is empty or unparsable.
func QueryValueOr[T internal.Scalar](c Context, name string, fallback T) T {
	return internal.QueryValueOr(c, name, fallback)
}

// ContextValue retrieves a typed value from the context.
// Returns the zero value of T if the key is not found or type assertion fails.
func ContextValue[T any](c Context, key any) T {
	return internal.ContextValue[T](c, key)
}
