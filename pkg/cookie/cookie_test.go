package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/awesome/pkg/cookie"
)

func TestManager(t *testing.T) {
	t.Parallel()

	t.Run("set writes configured attributes", func(t *testing.T) {
		t.Parallel()

		m := cookie.New("awesession", cookie.WithMaxAge(time.Hour), cookie.WithSecure(true))
		w := httptest.NewRecorder()
		m.Set(w, "value")

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		c := cookies[0]
		require.Equal(t, "awesession", c.Name)
		require.Equal(t, "value", c.Value)
		require.Equal(t, 3600, c.MaxAge)
		require.Equal(t, "/", c.Path)
		require.True(t, c.HttpOnly)
		require.True(t, c.Secure)
		require.Equal(t, http.SameSiteLaxMode, c.SameSite)
	})

	t.Run("get reads value", func(t *testing.T) {
		t.Parallel()

		m := cookie.New("awesession")
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "awesession", Value: "abc"})

		v, err := m.Get(r)
		require.NoError(t, err)
		require.Equal(t, "abc", v)
	})

	t.Run("get missing", func(t *testing.T) {
		t.Parallel()

		_, err := cookie.New("awesession").Get(httptest.NewRequest(http.MethodGet, "/", nil))
		require.ErrorIs(t, err, cookie.ErrNotFound)
	})

	t.Run("delete expires cookie", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		cookie.New("awesession").Delete(w)

		c := w.Result().Cookies()[0]
		require.Equal(t, "-deleted-", c.Value)
		require.Negative(t, c.MaxAge)
	})
}
