package blog_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/awesome/blog"
	"github.com/dmitrymomot/awesome/pkg/orm"
)

func TestUser_ValuesAssign(t *testing.T) {
	t.Parallel()

	u := &blog.User{Email: "a@b.com", Passwd: "h", Name: "A", Image: "i"}
	row := u.Values()
	require.False(t, row.Has("id"))
	require.False(t, row.Has("created_at"))

	var got blog.User
	require.NoError(t, got.Assign(orm.Row{
		"id": []byte("u1"), "email": "a@b.com", "passwd": "h", "admin": int64(1),
		"name": "A", "image": "i", "created_at": []byte("1700000000.5"),
	}))
	require.Equal(t, blog.User{ID: "u1", Email: "a@b.com", Passwd: "h", Admin: true, Name: "A", Image: "i", CreatedAt: 1700000000.5}, got)
}

func TestUser_Masked(t *testing.T) {
	t.Parallel()

	m := admin.Masked()
	require.Equal(t, blog.MaskedPassword, m.Passwd)
	require.Equal(t, "hash-a", admin.Passwd)
	require.Equal(t, admin.ID, m.UserID())
	require.True(t, m.IsAdmin())
}

func TestComment_AssignError(t *testing.T) {
	t.Parallel()

	var c blog.Comment
	require.Error(t, c.Assign(orm.Row{"id": "c1", "created_at": "not a number"}))
}
