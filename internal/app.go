package internal

import (
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/awesome/pkg/health"
	"github.com/dmitrymomot/awesome/pkg/logger"
)

// Default server timeouts.
const (
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultIdleTimeout       = 120 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultMaxHeaderBytes    = 1 << 20 // 1MB
	defaultShutdownTimeout   = 30 * time.Second
)

// App orchestrates the application lifecycle.
// It manages HTTP routing, middleware, and graceful shutdown.
// App is immutable after creation - all configuration is done via New().
type App struct {
	router                  chi.Router
	errorHandler            ErrorHandler
	notFoundHandler         HandlerFunc
	methodNotAllowedHandler HandlerFunc
	renderer                Renderer
	healthConfig            *healthConfig
	logger                  *slog.Logger
	middlewares             []Middleware
	handlers                []Handler
	endpoints               []Endpoint
	staticRoutes            []staticRoute
}

// staticRoute represents a static file handler mount point.
type staticRoute struct {
	handler http.Handler
	pattern string
}

// New creates a new application with the given options.
// It panics if an endpoint declaration is invalid.
//
// Example:
//
//	app := awesome.New(
//	    awesome.WithMiddleware(middlewares.Logger(), middlewares.Response(tpl)),
//	    awesome.WithHandlers(blog.NewHandler(store, auth)),
//	)
func New(opts ...Option) *App {
	a := &App{
		router: chi.NewRouter(),
		logger: logger.NewNope(),
	}

	for _, opt := range opts {
		opt(a)
	}

	a.setupRoutes()
	return a
}

// Router returns the underlying chi.Router for the App.
func (a *App) Router() chi.Router {
	return a.router
}

// ServeHTTP makes App an http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

// Renderer returns the template renderer configured with WithRenderer.
func (a *App) Renderer() Renderer {
	return a.renderer
}

// Run starts the HTTP server and blocks until shutdown.
//
// Example:
//
//	err := app.Run(cfg.Server.Addr, awesome.Logger(log), awesome.ShutdownHook(db.Shutdown(pool)))
func (a *App) Run(addr string, opts ...RunOption) error {
	cfg := buildRunConfig(opts...)
	if addr != "" {
		cfg.address = addr
	}

	return runServer(runtimeConfig{
		handler:         a.router,
		address:         cfg.address,
		logger:          cfg.logger,
		readTimeout:     cfg.readTimeout,
		writeTimeout:    cfg.writeTimeout,
		idleTimeout:     cfg.idleTimeout,
		shutdownTimeout: cfg.shutdownTimeout,
		shutdownHooks:   cfg.shutdownHooks,
		baseCtx:         cfg.baseCtx,
	})
}

// setupRoutes configures the router with middleware and handlers.
func (a *App) setupRoutes() {
	if a.notFoundHandler != nil {
		a.router.NotFound(a.wrapHandler(a.notFoundHandler))
	}
	if a.methodNotAllowedHandler != nil {
		a.router.MethodNotAllowed(a.wrapHandler(a.methodNotAllowedHandler))
	}

	// Apply global middleware
	for _, mw := range a.middlewares {
		a.router.Use(a.adaptMiddleware(mw))
	}

	for _, sr := range a.staticRoutes {
		a.router.Mount(sr.pattern, sr.handler)
	}

	if a.healthConfig != nil {
		a.router.Get(a.healthConfig.livenessPath, health.LivenessHandler())
		a.router.Get(a.healthConfig.readinessPath,
			health.ReadinessHandler(a.healthConfig.checks, health.WithLogger(a.logger)))
	}

	r := &routerAdapter{router: a.router, app: a}
	for _, e := range a.endpoints {
		r.Handle(e)
	}
	for _, h := range a.handlers {
		h.Routes(r)
	}
}

// endpointHandler binds the request to the endpoint's parameters, calls
// the endpoint and hands the result to the response stage. Without a
// response stage in the chain the result is coerced here.
func (a *App) endpointHandler(e Endpoint) HandlerFunc {
	b := newBinder(e)
	return func(c Context) error {
		args, err := b.bind(c)
		if err != nil {
			return err
		}
		c.LogDebug("call with args",
			slog.String("endpoint", e.String()),
			slog.Any("args", argNames(args)),
		)

		result, err := e.Func(c, args)
		if err != nil {
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				return err
			}
			result = apiErr.Payload()
		}

		if slot, ok := c.Get(ResultKey{}).(*Result); ok {
			slot.Store(result)
			return nil
		}
		return Coerce(c, result, a.renderer)
	}
}

// wrapHandler converts a HandlerFunc to http.HandlerFunc using the app's error handler.
func (a *App) wrapHandler(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := newContext(w, r, a)
		if err := h(c); err != nil {
			a.handleError(c, err)
		}
	}
}

// handleError handles errors from handlers using the configured error handler.
func (a *App) handleError(c Context, err error) {
	if c.Written() {
		return
	}
	if a.errorHandler != nil {
		if herr := a.errorHandler(c, err); herr != nil {
			a.logger.ErrorContext(c, "error handler failed", slog.Any("error", herr))
		}
		return
	}
	if httpErr := AsHTTPError(err); httpErr != nil {
		http.Error(c.Response(), httpErr.Message, httpErr.Code)
		return
	}
	a.logger.ErrorContext(c, "request failed", slog.Any("error", err))
	http.Error(c.Response(), "Internal Server Error", http.StatusInternalServerError)
}

func argNames(args Args) []string {
	names := make([]string, 0, len(args))
	for k := range args {
		names = append(names, k)
	}
	slices.Sort(names)
	return names
}

// healthConfig holds health check endpoint configuration.
type healthConfig struct {
	checks        health.Checks
	livenessPath  string
	readinessPath string
}

// Default health check paths.
const (
	defaultLivenessPath  = "/health/live"
	defaultReadinessPath = "/health/ready"
)

// HealthOption configures health check endpoints.
type HealthOption func(*healthConfig)

// WithLivenessPath sets a custom liveness endpoint path.
// Defaults to "/health/live".
func WithLivenessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.livenessPath = path
		}
	}
}

// WithReadinessPath sets a custom readiness endpoint path.
// Defaults to "/health/ready".
func WithReadinessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.readinessPath = path
		}
	}
}

// WithReadinessCheck adds a named readiness check.
// Checks run in parallel during readiness probe.
//
// Example:
//
//	awesome.WithReadinessCheck("db", db.Healthcheck(pool))
func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return func(c *healthConfig) {
		if c.checks == nil {
			c.checks = make(health.Checks)
		}
		c.checks[name] = fn
	}
}
