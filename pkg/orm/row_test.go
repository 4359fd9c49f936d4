package orm_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/awesome/pkg/orm"
)

func TestRow(t *testing.T) {
	t.Parallel()

	r := orm.Row{
		"name":    []byte("michael"),
		"admin":   int64(1),
		"count":   []byte("42"),
		"rate":    []byte("1.5"),
		"missing": nil,
		"bad":     struct{}{},
	}

	s, err := r.String("name")
	require.NoError(t, err)
	require.Equal(t, "michael", s)

	b, err := r.Bool("admin")
	require.NoError(t, err)
	require.True(t, b)

	n, err := r.Int64("count")
	require.NoError(t, err)
	require.Equal(t, int64(42), n)

	f, err := r.Float64("rate")
	require.NoError(t, err)
	require.InDelta(t, 1.5, f, 0.0001)

	n, err = r.Int64("missing")
	require.NoError(t, err)
	require.Zero(t, n)
	require.False(t, r.Has("missing"))
	require.True(t, r.Has("name"))

	_, err = r.Int64("bad")
	require.ErrorIs(t, err, orm.ErrConvert)
	_, err = r.String("bad")
	require.ErrorIs(t, err, orm.ErrConvert)
}

func TestToInt64(t *testing.T) {
	t.Parallel()

	for _, v := range []any{int64(7), 7, int32(7), uint64(7), 7.0, []byte("7"), "7"} {
		n, ok := orm.ToInt64(v)
		require.True(t, ok, "%T", v)
		require.Equal(t, int64(7), n)
	}

	_, ok := orm.ToInt64(nil)
	require.False(t, ok)
	_, ok = orm.ToInt64("seven")
	require.False(t, ok)
}

func TestPutNonZero(t *testing.T) {
	t.Parallel()

	r := orm.Row{}
	orm.PutNonZero(r, "id", "")
	orm.PutNonZero(r, "created_at", 0.0)
	orm.PutNonZero(r, "email", "a@b.c")
	require.Equal(t, orm.Row{"email": "a@b.c"}, r)
}
