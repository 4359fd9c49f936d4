// Command awesome serves the blog.
//
// Configuration comes from the embedded defaults, the YAML file named by
// AWESOME_CONFIG and the environment (a .env file is loaded first).
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/dmitrymomot/awesome"
	"github.com/dmitrymomot/awesome/blog"
	"github.com/dmitrymomot/awesome/middlewares"
	"github.com/dmitrymomot/awesome/pkg/cache"
	"github.com/dmitrymomot/awesome/pkg/config"
	"github.com/dmitrymomot/awesome/pkg/cookie"
	"github.com/dmitrymomot/awesome/pkg/db"
	"github.com/dmitrymomot/awesome/pkg/logger"
	"github.com/dmitrymomot/awesome/pkg/orm"
	"github.com/dmitrymomot/awesome/pkg/redis"
)

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("AWESOME_CONFIG"))
	if err != nil {
		return err
	}

	log := logger.FromConfig(cfg.Log, middlewares.RequestIDExtractor(), middlewares.UserIDExtractor())
	slog.SetDefault(log)

	pool, err := db.Open(ctx, cfg.Database)
	if err != nil {
		return err
	}
	migrations, err := blog.Migrations(pool.Driver())
	if err != nil {
		return err
	}
	if err := db.Migrate(ctx, pool, migrations, cfg.Database.MigrationsTable, log); err != nil {
		return err
	}

	mode := orm.Lenient
	if cfg.ORM.Strict {
		mode = orm.Strict
	}
	store := blog.NewStore(orm.New(pool.DB, orm.DialectFor(pool.Driver()),
		orm.WithLogger(log.With("component", "orm")),
		orm.WithMode(mode),
	))

	hooks := []awesome.RunOption{awesome.ShutdownHook(db.Shutdown(pool))}
	checks := []awesome.HealthOption{awesome.WithReadinessCheck("db", db.Healthcheck(pool))}

	var identities cache.Cache[*blog.User]
	if cfg.Redis.Enabled() {
		client, err := redis.Open(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		identities = cache.NewRedis[*blog.User](client, nil, cache.WithPrefix("awesome:user:"))
		hooks = append(hooks, awesome.ShutdownHook(redis.Shutdown(client)))
		checks = append(checks, awesome.WithReadinessCheck("redis", redis.Healthcheck(client)))
	} else {
		identities = cache.NewMemory[*blog.User](cache.WithMaxEntries(10000))
	}
	hooks = append(hooks, awesome.ShutdownHook(func(context.Context) error { return identities.Close() }))

	sessions := cookie.New(cfg.Session.Cookie,
		cookie.WithMaxAge(cfg.Session.MaxAge),
		cookie.WithSecure(cfg.Session.Secure),
	)
	auth := blog.NewAuth(store, sessions, cfg.Session.Secret, identities,
		blog.WithAuthLogger(log.With("component", "auth")),
	)

	templates, err := blog.NewTemplates()
	if err != nil {
		return err
	}

	app := awesome.New(
		awesome.WithCustomLogger(log),
		awesome.WithMiddleware(
			middlewares.RequestID(),
			middlewares.Recover(),
			middlewares.Logger(),
			middlewares.Auth(middlewares.AuthConfig{
				Resolver: auth,
				Sources:  []awesome.ExtractorSource{awesome.FromCookie(auth.CookieName())},
			}),
			middlewares.Data(),
			middlewares.Response(templates),
		),
		awesome.WithStaticFiles("/static/", blog.StaticFS(), "static"),
		awesome.WithHandlers(blog.NewHandler(store, auth,
			blog.WithSignInLimiter(middlewares.RateLimit(
				middlewares.PerMinute(cfg.RateLimit.AuthenticatePerMinute),
				cfg.RateLimit.Burst,
			)),
		)),
		awesome.WithErrorHandler(blog.HandleError),
		awesome.WithNotFoundHandler(blog.HandleNotFound),
		awesome.WithHealthChecks(checks...),
	)

	opts := append([]awesome.RunOption{
		awesome.Logger(log),
		awesome.ServerTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.IdleTimeout),
		awesome.ShutdownTimeout(cfg.Server.ShutdownTimeout),
	}, hooks...)

	log.Info("server started", "addr", cfg.Server.Addr, "driver", pool.Driver())
	return app.Run(cfg.Server.Addr, opts...)
}
