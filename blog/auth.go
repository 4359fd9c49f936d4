package blog

import (
	"context"
	"crypto/hmac"
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/awesome"
	"github.com/dmitrymomot/awesome/pkg/cache"
	"github.com/dmitrymomot/awesome/pkg/cookie"
	"github.com/dmitrymomot/awesome/pkg/logger"
)

// identityTTL bounds how long a resolved user stays cached.
const identityTTL = 5 * time.Minute

// Auth signs users in and resolves session cookies back to users.
//
// A cookie value has the form "uid-expires-signature", where signature is
// the hex HMAC-SHA256 of "uid-passwd-expires" keyed with the secret. Changing
// the password hash invalidates every issued cookie.
type Auth struct {
	store   *Store
	cookies *cookie.Manager
	users   cache.Cache[*User]
	logger  *slog.Logger
	now     func() time.Time
	secret  []byte
	cost    int
}

// AuthOption configures Auth.
type AuthOption func(*Auth)

// WithClock overrides the time source used for cookie expiry.
func WithClock(now func() time.Time) AuthOption {
	return func(a *Auth) {
		if now != nil {
			a.now = now
		}
	}
}

// WithHashCost sets the bcrypt cost. Values outside bcrypt's range fall
// back to bcrypt.DefaultCost.
func WithHashCost(cost int) AuthOption {
	return func(a *Auth) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			a.cost = cost
		}
	}
}

// WithAuthLogger sets the logger.
func WithAuthLogger(l *slog.Logger) AuthOption {
	return func(a *Auth) {
		if l != nil {
			a.logger = l
		}
	}
}

// NewAuth creates an Auth. users caches resolved identities; pass
// cache.NewMemory or cache.NewRedis.
func NewAuth(store *Store, cookies *cookie.Manager, secret string, users cache.Cache[*User], opts ...AuthOption) *Auth {
	a := &Auth{
		store:   store,
		cookies: cookies,
		users:   users,
		secret:  []byte(secret),
		logger:  logger.NewNope(),
		now:     time.Now,
		cost:    bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// CookieName returns the session cookie name.
func (a *Auth) CookieName() string { return a.cookies.Name() }

// HashPassword returns the bcrypt hash stored in users.passwd.
func (a *Auth) HashPassword(passwd string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(passwd), a.cost)
	if err != nil {
		return "", fmt.Errorf("blog: hash password: %w", err)
	}
	return string(h), nil
}

// Authenticate checks the credentials and returns the user.
// Failures are reported as APIErrors naming the offending field.
func (a *Auth) Authenticate(ctx context.Context, email, passwd string) (*User, error) {
	if email == "" {
		return nil, awesome.APIValueError("email", "Invalid email.")
	}
	if passwd == "" {
		return nil, awesome.APIValueError("passwd", "Invalid password.")
	}
	u, err := a.store.UserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, awesome.APIValueError("email", "Email not exist.")
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Passwd), []byte(passwd)) != nil {
		return nil, awesome.APIValueError("passwd", "Invalid password.")
	}
	return u, nil
}

// SignIn writes the session cookie for u.
func (a *Auth) SignIn(w http.ResponseWriter, u *User) {
	a.cookies.Set(w, a.Encode(u, a.cookies.MaxAge()))
}

// SignOut clears the session cookie.
func (a *Auth) SignOut(w http.ResponseWriter) {
	a.cookies.Delete(w)
}

// Encode builds a cookie value for u that expires after maxAge.
func (a *Auth) Encode(u *User, maxAge time.Duration) string {
	expires := strconv.FormatInt(a.now().Add(maxAge).Unix(), 10)
	return strings.Join([]string{u.ID, expires, a.sign(u.ID, u.Passwd, expires)}, "-")
}

// Resolve turns a cookie value into the signed-in user.
// The returned identity carries a masked password.
func (a *Auth) Resolve(ctx context.Context, credential string) (awesome.Identity, error) {
	parts := strings.Split(credential, "-")
	if len(parts) != 3 {
		return nil, ErrInvalidCookie
	}
	uid, expires, signature := parts[0], parts[1], parts[2]

	exp, err := strconv.ParseInt(expires, 10, 64)
	if err != nil {
		return nil, errors.Join(ErrInvalidCookie, err)
	}
	if exp < a.now().Unix() {
		return nil, ErrCookieExpired
	}

	u, err := cache.GetOrSet(ctx, a.users, uid, func(ctx context.Context) (*User, time.Duration, error) {
		u, err := a.store.Users.Find(ctx, uid)
		if err != nil {
			return nil, 0, err
		}
		if u == nil {
			return nil, 0, ErrUnknownUser
		}
		return u, identityTTL, nil
	})
	if err != nil {
		return nil, err
	}

	if !hmac.Equal([]byte(signature), []byte(a.sign(u.ID, u.Passwd, expires))) {
		a.logger.WarnContext(ctx, "invalid session signature", slog.String("user_id", uid))
		return nil, ErrInvalidSignature
	}
	return u.Masked(), nil
}

func (a *Auth) sign(uid, passwd, expires string) string {
	mac := hmac.New(sha256.New, a.secret)
	mac.Write([]byte(uid + "-" + passwd + "-" + expires))
	return hex.EncodeToString(mac.Sum(nil))
}

// Gravatar returns the avatar URL for an email address.
func Gravatar(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return "http://www.gravatar.com/avatar/" + hex.EncodeToString(sum[:]) + "?d=mm&s=120"
}
