package cookie

import (
	"errors"
	"net/http"
	"time"
)

// ErrNotFound is returned when the request carries no cookie of that name.
var ErrNotFound = errors.New("cookie: not found")

// Manager reads and writes one named cookie with fixed attributes.
type Manager struct {
	name     string
	domain   string
	path     string
	maxAge   time.Duration
	secure   bool
	httpOnly bool
	sameSite http.SameSite
}

// Option configures the Manager.
type Option func(*Manager)

// New creates a Manager for the cookie called name.
// Defaults: path "/", HttpOnly, SameSite=Lax, max age 24 hours.
func New(name string, opts ...Option) *Manager {
	m := &Manager{
		name:     name,
		path:     "/",
		maxAge:   24 * time.Hour,
		httpOnly: true,
		sameSite: http.SameSiteLaxMode,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func WithDomain(domain string) Option {
	return func(m *Manager) {
		m.domain = domain
	}
}

func WithPath(path string) Option {
	return func(m *Manager) {
		if path != "" {
			m.path = path
		}
	}
}

// WithMaxAge sets the lifetime applied by Set. Non-positive values are ignored.
func WithMaxAge(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.maxAge = d
		}
	}
}

func WithSecure(secure bool) Option {
	return func(m *Manager) {
		m.secure = secure
	}
}

func WithSameSite(ss http.SameSite) Option {
	return func(m *Manager) {
		m.sameSite = ss
	}
}

// Name returns the cookie name.
func (m *Manager) Name() string { return m.name }

// MaxAge returns the lifetime applied by Set.
func (m *Manager) MaxAge() time.Duration { return m.maxAge }

// Get returns the cookie value from the request.
func (m *Manager) Get(r *http.Request) (string, error) {
	c, err := r.Cookie(m.name)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", ErrNotFound
		}
		return "", err
	}
	return c.Value, nil
}

// Set writes the cookie with the configured max age.
func (m *Manager) Set(w http.ResponseWriter, value string) {
	http.SetCookie(w, m.cookie(value, int(m.maxAge/time.Second)))
}

// Delete expires the cookie. The value is replaced by "-deleted-".
func (m *Manager) Delete(w http.ResponseWriter) {
	http.SetCookie(w, m.cookie("-deleted-", -1))
}

func (m *Manager) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     m.name,
		Value:    value,
		Path:     m.path,
		Domain:   m.domain,
		MaxAge:   maxAge,
		Secure:   m.secure,
		HttpOnly: m.httpOnly,
		SameSite: m.sameSite,
	}
}
