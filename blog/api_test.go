package blog_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/awesome/blog"
)

func decode(t *testing.T, body string) map[string]any {
	t.Helper()

	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &m))
	return m
}

func requireAPIError(t *testing.T, body, kind, field string) {
	t.Helper()

	m := decode(t, body)
	require.Equal(t, kind, m["error"])
	require.Equal(t, field, m["data"])
}

func TestAPI_ListBlogs(t *testing.T) {
	t.Parallel()

	t.Run("returns one page", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		f.mock.ExpectQuery("select count(`id`) _num_ from `blogs`").
			WillReturnRows(sqlmock.NewRows([]string{"_num_"}).AddRow(int64(12)))
		f.mock.ExpectQuery(blogSelect+" order by `created_at` desc limit ? offset ?").
			WithArgs(10, 10).
			WillReturnRows(blogRow(blogRow(sqlmock.NewRows(blogColumns), "b1", "First"), "b2", "Second"))

		w := f.do(t, nil, http.MethodGet, "/api/blogs?page=2", "")
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "application/json;charset=utf-8", w.Header().Get("Content-Type"))

		m := decode(t, w.Body.String())
		page := m["page"].(map[string]any)
		require.Equal(t, 2.0, page["page_index"])
		require.Equal(t, 2.0, page["page_count"])
		require.Equal(t, true, page["has_previous"])
		require.Equal(t, false, page["has_next"])
		require.Len(t, m["blogs"], 2)
		require.NoError(t, f.mock.ExpectationsWereMet())
	})

	t.Run("empty table skips the select", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		f.mock.ExpectQuery("select count(`id`) _num_ from `blogs`").
			WillReturnRows(sqlmock.NewRows([]string{"_num_"}).AddRow(int64(0)))

		w := f.do(t, nil, http.MethodGet, "/api/blogs", "")
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, []any{}, decode(t, w.Body.String())["blogs"])
		require.NoError(t, f.mock.ExpectationsWereMet())
	})

	t.Run("driver failure is a JSON 500", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		f.mock.ExpectQuery("select count(`id`) _num_ from `blogs`").WillReturnError(errors.New("connection reset"))

		w := f.do(t, nil, http.MethodGet, "/api/blogs", "")
		require.Equal(t, http.StatusInternalServerError, w.Code)
		m := decode(t, w.Body.String())
		require.Equal(t, "http:internal_server_error", m["error"])
		require.NotContains(t, w.Body.String(), "connection reset")
	})
}

func TestAPI_GetBlog(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.mock.ExpectQuery(blogSelect + " where `id`=?").
		WithArgs("b1").
		WillReturnRows(blogRow(sqlmock.NewRows(blogColumns), "b1", "First"))
	f.mock.ExpectQuery(blogSelect + " where `id`=?").
		WithArgs("nope").
		WillReturnRows(sqlmock.NewRows(blogColumns))

	w := f.do(t, nil, http.MethodGet, "/api/blogs/b1", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "First", decode(t, w.Body.String())["name"])

	w = f.do(t, nil, http.MethodGet, "/api/blogs/nope", "")
	require.Equal(t, http.StatusOK, w.Code)
	requireAPIError(t, w.Body.String(), "value:notfound", "Blog")
}

func TestAPI_CreateBlog(t *testing.T) {
	t.Parallel()

	const insert = "insert into `blogs` (`user_id`, `user_name`, `user_image`, `name`, `summary`, `content`, `created_at`, `id`) values (?, ?, ?, ?, ?, ?, ?, ?)"
	const body = `{"name":" Hello ","summary":"short","content":"# Hi"}`

	t.Run("admin creates a blog", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		f.mock.ExpectExec(insert).
			WithArgs(admin.ID, admin.Name, admin.Image, "Hello", "short", "# Hi", sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		w := f.do(t, admin, http.MethodPost, "/api/blogs", body)
		require.Equal(t, http.StatusOK, w.Code)
		m := decode(t, w.Body.String())
		require.Equal(t, "Hello", m["name"])
		require.Len(t, m["id"], 50)
		require.NoError(t, f.mock.ExpectationsWereMet())
	})

	t.Run("reader is forbidden", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		w := f.do(t, reader, http.MethodPost, "/api/blogs", body)
		require.Equal(t, http.StatusOK, w.Code)
		requireAPIError(t, w.Body.String(), "permission:forbidden", "permission")
	})

	t.Run("blank field", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		w := f.do(t, admin, http.MethodPost, "/api/blogs", `{"name":"x","summary":"  ","content":"y"}`)
		requireAPIError(t, w.Body.String(), "value:invalid", "summary")
		require.Equal(t, "summary cannot be empty.", decode(t, w.Body.String())["message"])
	})

	t.Run("missing field", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		w := f.do(t, admin, http.MethodPost, "/api/blogs", `{"name":"x","summary":"y"}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
		require.Equal(t, "Missing argument: content", decode(t, w.Body.String())["message"])
	})
}

func TestAPI_UpdateBlog(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.mock.ExpectQuery(blogSelect + " where `id`=?").
		WithArgs("b1").
		WillReturnRows(blogRow(sqlmock.NewRows(blogColumns), "b1", "Old"))
	f.mock.ExpectExec("update `blogs` set `user_id`=?, `user_name`=?, `user_image`=?, `name`=?, `summary`=?, `content`=?, `created_at`=? where `id`=?").
		WithArgs(admin.ID, admin.Name, admin.Image, "New", "s", "c", 1700000000.0, "b1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	w := f.do(t, admin, http.MethodPost, "/api/blogs/b1", `{"name":"New","summary":"s","content":"c"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "New", decode(t, w.Body.String())["name"])
	require.NoError(t, f.mock.ExpectationsWereMet())
}

func TestAPI_DeleteBlog(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.mock.ExpectQuery(blogSelect + " where `id`=?").
		WithArgs("b1").
		WillReturnRows(blogRow(sqlmock.NewRows(blogColumns), "b1", "Gone"))
	f.mock.ExpectBegin()
	f.mock.ExpectExec("delete from `comments` where `blog_id`=?").
		WithArgs("b1").
		WillReturnResult(sqlmock.NewResult(0, 3))
	f.mock.ExpectExec("delete from `blogs` where `id`=?").
		WithArgs("b1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	f.mock.ExpectCommit()

	w := f.do(t, admin, http.MethodPost, "/api/blogs/b1/delete", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, map[string]any{"id": "b1"}, decode(t, w.Body.String()))
	require.NoError(t, f.mock.ExpectationsWereMet())
}

func TestAPI_Register(t *testing.T) {
	t.Parallel()

	const passwd = "0123456789abcdef0123456789abcdef01234567"

	tests := []struct {
		name  string
		body  string
		field string
	}{
		{name: "blank name", body: `{"name":" ","email":"a@b.com","passwd":"` + passwd + `"}`, field: "name"},
		{name: "bad email", body: `{"name":"A","email":"nope","passwd":"` + passwd + `"}`, field: "email"},
		{name: "unhashed password", body: `{"name":"A","email":"a@b.com","passwd":"secret"}`, field: "passwd"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newFixture(t)
			w := f.do(t, nil, http.MethodPost, "/api/users", tt.body)
			require.Equal(t, http.StatusOK, w.Code)
			requireAPIError(t, w.Body.String(), "value:invalid", tt.field)
		})
	}

	t.Run("email in use", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		f.mock.ExpectQuery(userSelect+" where `email`=? limit ?").
			WithArgs("reader@example.com", 1).
			WillReturnRows(sqlmock.NewRows(userColumns).
				AddRow(reader.ID, reader.Email, reader.Passwd, false, reader.Name, reader.Image, 1.0))

		w := f.do(t, nil, http.MethodPost, "/api/users", `{"name":"R","email":"Reader@Example.com","passwd":"`+passwd+`"}`)
		requireAPIError(t, w.Body.String(), "register:failed", "email")
	})

	t.Run("creates user and signs in", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		f.mock.ExpectQuery(userSelect+" where `email`=? limit ?").
			WithArgs("new@example.com", 1).
			WillReturnRows(sqlmock.NewRows(userColumns))
		f.mock.ExpectExec("insert into `users` (`email`, `passwd`, `admin`, `name`, `image`, `created_at`, `id`) values (?, ?, ?, ?, ?, ?, ?)").
			WithArgs("new@example.com", sqlmock.AnyArg(), false, "New", blog.Gravatar("new@example.com"), sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		w := f.do(t, nil, http.MethodPost, "/api/users", `{"name":"<b>New</b>","email":"new@example.com","passwd":"`+passwd+`"}`)
		require.Equal(t, http.StatusOK, w.Code)

		m := decode(t, w.Body.String())
		require.Equal(t, "New", m["name"])
		require.Equal(t, blog.MaskedPassword, m["passwd"])

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		require.True(t, strings.HasPrefix(cookies[0].Value, m["id"].(string)+"-"))
		require.NoError(t, f.mock.ExpectationsWereMet())
	})
}

func TestAPI_Authenticate(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	hash, err := f.auth.HashPassword("sha1-of-credentials")
	require.NoError(t, err)

	f.mock.ExpectQuery(userSelect+" where `email`=? limit ?").
		WithArgs("reader@example.com", 1).
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(reader.ID, reader.Email, hash, false, reader.Name, reader.Image, 1.0))

	w := f.do(t, nil, http.MethodPost, "/api/authenticate", `{"email":"reader@example.com","passwd":"sha1-of-credentials"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, reader.ID, decode(t, w.Body.String())["id"])
	require.NotEmpty(t, w.Result().Cookies())

	w = f.do(t, nil, http.MethodPost, "/api/authenticate", `{"email":"","passwd":"x"}`)
	requireAPIError(t, w.Body.String(), "value:invalid", "email")
	require.NoError(t, f.mock.ExpectationsWereMet())
}

func TestAPI_Comments(t *testing.T) {
	t.Parallel()

	t.Run("anonymous cannot comment", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		w := f.do(t, nil, http.MethodPost, "/api/blogs/b1/comments", `{"content":"hi"}`)
		requireAPIError(t, w.Body.String(), "permission:forbidden", "permission")
		require.Equal(t, "Please signin first.", decode(t, w.Body.String())["message"])
	})

	t.Run("unknown blog", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		f.mock.ExpectQuery(blogSelect + " where `id`=?").
			WithArgs("b404").
			WillReturnRows(sqlmock.NewRows(blogColumns))

		w := f.do(t, reader, http.MethodPost, "/api/blogs/b404/comments", `{"content":"hi"}`)
		requireAPIError(t, w.Body.String(), "value:notfound", "Blog")
	})

	t.Run("reader comments", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		f.mock.ExpectQuery(blogSelect + " where `id`=?").
			WithArgs("b1").
			WillReturnRows(blogRow(sqlmock.NewRows(blogColumns), "b1", "First"))
		f.mock.ExpectExec("insert into `comments` (`blog_id`, `user_id`, `user_name`, `user_image`, `content`, `created_at`, `id`) values (?, ?, ?, ?, ?, ?, ?)").
			WithArgs("b1", reader.ID, reader.Name, reader.Image, "nice post", sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		w := f.do(t, reader, http.MethodPost, "/api/blogs/b1/comments", `{"content":" nice post "}`)
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "nice post", decode(t, w.Body.String())["content"])
		require.NoError(t, f.mock.ExpectationsWereMet())
	})

	t.Run("admin deletes a comment", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		f.mock.ExpectQuery(commentSelect + " where `id`=?").
			WithArgs("c1").
			WillReturnRows(sqlmock.NewRows(commentColumns).
				AddRow("c1", "b1", reader.ID, reader.Name, reader.Image, "hi", 1.0))
		f.mock.ExpectExec("delete from `comments` where `id`=?").
			WithArgs("c1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		f.mock.ExpectQuery(commentSelect + " where `id`=?").
			WithArgs("c2").
			WillReturnRows(sqlmock.NewRows(commentColumns))

		w := f.do(t, admin, http.MethodPost, "/api/comments/c1/delete", "")
		require.Equal(t, map[string]any{"id": "c1"}, decode(t, w.Body.String()))

		w = f.do(t, admin, http.MethodPost, "/api/comments/c2/delete", "")
		requireAPIError(t, w.Body.String(), "value:notfound", "Comment")
		require.NoError(t, f.mock.ExpectationsWereMet())
	})
}

func TestAPI_ListUsersMasksPasswords(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.mock.ExpectQuery("select count(`id`) _num_ from `users`").
		WillReturnRows(sqlmock.NewRows([]string{"_num_"}).AddRow(int64(1)))
	f.mock.ExpectQuery(userSelect+" order by `created_at` desc limit ? offset ?").
		WithArgs(10, 0).
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(reader.ID, reader.Email, "real-hash", false, reader.Name, reader.Image, 1.0))

	w := f.do(t, nil, http.MethodGet, "/api/users", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NotContains(t, w.Body.String(), "real-hash")
	require.Contains(t, w.Body.String(), blog.MaskedPassword)
}
