package blog_test

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/awesome"
	"github.com/dmitrymomot/awesome/blog"
	"github.com/dmitrymomot/awesome/middlewares"
	"github.com/dmitrymomot/awesome/pkg/cache"
	"github.com/dmitrymomot/awesome/pkg/cookie"
	"github.com/dmitrymomot/awesome/pkg/orm"
)

const (
	userSelect    = "select `id`, `email`, `passwd`, `admin`, `name`, `image`, `created_at` from `users`"
	blogSelect    = "select `id`, `user_id`, `user_name`, `user_image`, `name`, `summary`, `content`, `created_at` from `blogs`"
	commentSelect = "select `id`, `blog_id`, `user_id`, `user_name`, `user_image`, `content`, `created_at` from `comments`"
)

var (
	userColumns    = []string{"id", "email", "passwd", "admin", "name", "image", "created_at"}
	blogColumns    = []string{"id", "user_id", "user_name", "user_image", "name", "summary", "content", "created_at"}
	commentColumns = []string{"id", "blog_id", "user_id", "user_name", "user_image", "content", "created_at"}
)

var (
	admin  = &blog.User{ID: "u-admin", Email: "admin@example.com", Passwd: "hash-a", Name: "Admin", Image: "a.png", Admin: true}
	reader = &blog.User{ID: "u-reader", Email: "reader@example.com", Passwd: "hash-r", Name: "Reader", Image: "r.png"}
)

type fixture struct {
	mock   sqlmock.Sqlmock
	store  *blog.Store
	auth   *blog.Auth
	users  *cache.Memory[*blog.User]
	app    *awesome.App
}

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	pool, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { _ = pool.Close() })
	return pool, mock
}

// newFixture wires the blog the way cmd/awesome does, on top of sqlmock.
// The admin and reader users are cached so cookies resolve without queries.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	pool, mock := newMock(t)
	store := blog.NewStore(orm.New(pool, orm.MySQL))
	users := cache.NewMemory[*blog.User]()
	t.Cleanup(func() { _ = users.Close() })

	ctx := context.Background()
	require.NoError(t, users.Set(ctx, admin.ID, admin, -1))
	require.NoError(t, users.Set(ctx, reader.ID, reader, -1))

	auth := blog.NewAuth(store, cookie.New(middlewares.DefaultSessionCookie), "secret", users,
		blog.WithHashCost(bcrypt.MinCost),
	)
	tpl, err := blog.NewTemplates()
	require.NoError(t, err)

	app := awesome.New(
		awesome.WithMiddleware(
			middlewares.Recover(),
			middlewares.Auth(middlewares.AuthConfig{Resolver: auth}),
			middlewares.Data(),
			middlewares.Response(tpl),
		),
		awesome.WithHandlers(blog.NewHandler(store, auth)),
		awesome.WithErrorHandler(blog.HandleError),
		awesome.WithNotFoundHandler(blog.HandleNotFound),
	)

	return &fixture{mock: mock, store: store, auth: auth, users: users, app: app}
}

// do sends a request as u (nil for anonymous). A non-empty body is sent as JSON.
func (f *fixture) do(t *testing.T, u *blog.User, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if u != nil {
		req.AddCookie(&http.Cookie{Name: middlewares.DefaultSessionCookie, Value: f.auth.Encode(u, time.Hour)})
	}

	w := httptest.NewRecorder()
	f.app.ServeHTTP(w, req)
	return w
}

func blogRow(rows *sqlmock.Rows, id, name string) *sqlmock.Rows {
	return rows.AddRow(id, admin.ID, admin.Name, admin.Image, name, "summary of "+name, "# "+name, 1700000000.0)
}
