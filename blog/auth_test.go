package blog_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/awesome"
	"github.com/dmitrymomot/awesome/blog"
	"github.com/dmitrymomot/awesome/pkg/cache"
	"github.com/dmitrymomot/awesome/pkg/cookie"
	"github.com/dmitrymomot/awesome/pkg/orm"
)

func newAuth(t *testing.T, now time.Time) (*blog.Auth, sqlmock.Sqlmock) {
	t.Helper()

	pool, mock := newMock(t)
	users := cache.NewMemory[*blog.User]()
	t.Cleanup(func() { _ = users.Close() })

	auth := blog.NewAuth(blog.NewStore(orm.New(pool, orm.MySQL)), cookie.New("awesession"), "secret", users,
		blog.WithClock(func() time.Time { return now }),
		blog.WithHashCost(bcrypt.MinCost),
	)
	return auth, mock
}

func expectUser(mock sqlmock.Sqlmock, u *blog.User) {
	mock.ExpectQuery(userSelect+" where `id`=?").
		WithArgs(u.ID).
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(u.ID, u.Email, u.Passwd, u.Admin, u.Name, u.Image, u.CreatedAt))
}

func TestAuth_Resolve(t *testing.T) {
	t.Parallel()

	now := time.Unix(1700000000, 0)

	t.Run("valid cookie resolves and caches", func(t *testing.T) {
		t.Parallel()

		auth, mock := newAuth(t, now)
		expectUser(mock, admin)

		value := auth.Encode(admin, time.Hour)
		require.True(t, strings.HasPrefix(value, admin.ID+"-1700003600-"))

		for range 2 {
			id, err := auth.Resolve(context.Background(), value)
			require.NoError(t, err)
			require.Equal(t, admin.ID, id.UserID())
			require.True(t, id.IsAdmin())
			require.Equal(t, blog.MaskedPassword, id.(*blog.User).Passwd)
		}
		require.NoError(t, mock.ExpectationsWereMet())
	})

	tests := []struct {
		err    error
		name   string
		cookie func(a *blog.Auth) string
	}{
		{
			name:   "malformed",
			cookie: func(*blog.Auth) string { return "garbage" },
			err:    blog.ErrInvalidCookie,
		},
		{
			name:   "bad expiry",
			cookie: func(*blog.Auth) string { return admin.ID + "-soon-abc" },
			err:    blog.ErrInvalidCookie,
		},
		{
			name:   "expired",
			cookie: func(a *blog.Auth) string { return a.Encode(admin, -time.Minute) },
			err:    blog.ErrCookieExpired,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			auth, _ := newAuth(t, now)
			id, err := auth.Resolve(context.Background(), tt.cookie(auth))
			require.ErrorIs(t, err, tt.err)
			require.Nil(t, id)
		})
	}

	t.Run("password change invalidates the signature", func(t *testing.T) {
		t.Parallel()

		auth, mock := newAuth(t, now)
		changed := *admin
		changed.ID = "u-rotated"
		changed.Passwd = "new-hash"
		expectUser(mock, &changed)

		original := changed
		original.Passwd = admin.Passwd
		_, err := auth.Resolve(context.Background(), auth.Encode(&original, time.Hour))
		require.ErrorIs(t, err, blog.ErrInvalidSignature)
	})

	t.Run("unknown user is not cached", func(t *testing.T) {
		t.Parallel()

		auth, mock := newAuth(t, now)
		for range 2 {
			mock.ExpectQuery(userSelect + " where `id`=?").
				WithArgs(reader.ID).
				WillReturnRows(sqlmock.NewRows(userColumns))
		}

		value := auth.Encode(reader, time.Hour)
		for range 2 {
			_, err := auth.Resolve(context.Background(), value)
			require.ErrorIs(t, err, blog.ErrUnknownUser)
		}
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAuth_Authenticate(t *testing.T) {
	t.Parallel()

	auth, mock := newAuth(t, time.Now())
	hash, err := auth.HashPassword("right")
	require.NoError(t, err)
	require.NotEqual(t, "right", hash)

	expectByEmail := func(rows *sqlmock.Rows) {
		mock.ExpectQuery(userSelect+" where `email`=? limit ?").
			WithArgs(reader.Email, 1).
			WillReturnRows(rows)
	}
	expectByEmail(sqlmock.NewRows(userColumns).AddRow(reader.ID, reader.Email, hash, false, reader.Name, reader.Image, 1.0))
	expectByEmail(sqlmock.NewRows(userColumns).AddRow(reader.ID, reader.Email, hash, false, reader.Name, reader.Image, 1.0))
	expectByEmail(sqlmock.NewRows(userColumns))

	ctx := context.Background()

	u, err := auth.Authenticate(ctx, reader.Email, "right")
	require.NoError(t, err)
	require.Equal(t, reader.ID, u.ID)

	tests := []struct {
		email, passwd, field, message string
	}{
		{email: "", passwd: "x", field: "email", message: "Invalid email."},
		{email: reader.Email, passwd: "", field: "passwd", message: "Invalid password."},
		{email: reader.Email, passwd: "wrong", field: "passwd", message: "Invalid password."},
		{email: reader.Email, passwd: "right", field: "email", message: "Email not exist."},
	}
	for _, tt := range tests {
		_, err := auth.Authenticate(ctx, tt.email, tt.passwd)

		var apiErr *awesome.APIError
		require.True(t, errors.As(err, &apiErr), "%s/%s", tt.email, tt.passwd)
		require.Equal(t, tt.field, apiErr.Field)
		require.Equal(t, tt.message, apiErr.Message)
	}
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGravatar(t *testing.T) {
	t.Parallel()

	require.Equal(t,
		"http://www.gravatar.com/avatar/0bc83cb571cd1c50ba6f3e8a78ef1346?d=mm&s=120",
		blog.Gravatar(" MyEmailAddress@example.com "),
	)
}
