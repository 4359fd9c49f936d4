package middlewares

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dmitrymomot/awesome/internal"
	"github.com/dmitrymomot/awesome/pkg/logger"
)

// Default auth settings.
const (
	DefaultSessionCookie = "awesession"
	DefaultAdminPrefix   = "/manage/"
	DefaultSignInPath    = "/signin"
)

// IdentityResolver turns a credential, usually a session cookie value,
// into an Identity. A nil identity with a nil error means anonymous.
type IdentityResolver interface {
	Resolve(ctx context.Context, credential string) (internal.Identity, error)
}

// IdentityResolverFunc adapts a function to IdentityResolver.
type IdentityResolverFunc func(ctx context.Context, credential string) (internal.Identity, error)

func (f IdentityResolverFunc) Resolve(ctx context.Context, credential string) (internal.Identity, error) {
	return f(ctx, credential)
}

// AuthConfig configures the auth middleware.
type AuthConfig struct {
	Resolver    IdentityResolver
	AdminPrefix string                    // paths requiring an admin identity (default: "/manage/")
	SignInPath  string                    // redirect target for non-admins (default: "/signin")
	Sources     []internal.ExtractorSource // where the credential is read from (default: session cookie)
}

// Auth returns middleware that resolves the request credential into an
// Identity attached to the context. Resolution failures leave the request
// anonymous. Requests under AdminPrefix without an admin identity are
// redirected to SignInPath with 302.
func Auth(cfg AuthConfig) internal.Middleware {
	if cfg.Resolver == nil {
		panic("middlewares: auth resolver is required")
	}
	if cfg.AdminPrefix == "" {
		cfg.AdminPrefix = DefaultAdminPrefix
	}
	if cfg.SignInPath == "" {
		cfg.SignInPath = DefaultSignInPath
	}
	if len(cfg.Sources) == 0 {
		cfg.Sources = []internal.ExtractorSource{internal.FromCookie(DefaultSessionCookie)}
	}
	extractor := internal.NewExtractor(cfg.Sources...)

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			c.LogDebug("check user", "path", c.Request().URL.Path)

			if credential, ok := extractor.Extract(c); ok {
				identity, err := cfg.Resolver.Resolve(c, credential)
				switch {
				case err != nil:
					c.LogWarn("failed to resolve identity", slog.Any("error", err))
				case identity != nil:
					c.LogInfo("set current user", "user_id", identity.UserID())
					c.SetIdentity(identity)
				}
			}

			if strings.HasPrefix(c.Request().URL.Path, cfg.AdminPrefix) {
				if id := c.Identity(); id == nil || !id.IsAdmin() {
					return c.Redirect(http.StatusFound, cfg.SignInPath)
				}
			}

			return next(c)
		}
	}
}

// UserIDExtractor returns a ContextExtractor for use with WithLogger.
// Adds "user_id" to log entries of authenticated requests.
func UserIDExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id, ok := ctx.Value(internal.IdentityKey{}).(internal.Identity); ok && id != nil && id.UserID() != "" {
			return slog.String("user_id", id.UserID()), true
		}
		return slog.Attr{}, false
	}
}
