package orm_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/awesome/pkg/orm"
)

func TestDB_Select(t *testing.T) {
	t.Parallel()

	t.Run("returns column maps", func(t *testing.T) {
		t.Parallel()

		pool, mock := newMock(t)
		mock.ExpectQuery("select `id`, `name` from `users`").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
				AddRow("1", "a").
				AddRow("2", "b"))

		d := orm.New(pool, orm.MySQL)
		rows, err := d.Select(context.Background(), "select `id`, `name` from `users`", nil, 0)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		require.Equal(t, "b", rows[1]["name"])
	})

	t.Run("size caps the result", func(t *testing.T) {
		t.Parallel()

		pool, mock := newMock(t)
		mock.ExpectQuery("select `id` from `users`").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("1").AddRow("2").AddRow("3"))

		d := orm.New(pool, orm.MySQL)
		rows, err := d.Select(context.Background(), "select `id` from `users`", nil, 1)
		require.NoError(t, err)
		require.Len(t, rows, 1)
	})

	t.Run("propagates driver error", func(t *testing.T) {
		t.Parallel()

		pool, mock := newMock(t)
		boom := errors.New("boom")
		mock.ExpectQuery("select 1").WillReturnError(boom)

		d := orm.New(pool, orm.MySQL)
		_, err := d.Select(context.Background(), "select 1", nil, 0)
		require.ErrorIs(t, err, boom)
	})
}

func TestDB_Execute(t *testing.T) {
	t.Parallel()

	t.Run("autocommit runs statement directly", func(t *testing.T) {
		t.Parallel()

		pool, mock := newMock(t)
		mock.ExpectExec("delete from `users`").WillReturnResult(sqlmock.NewResult(0, 3))

		d := orm.New(pool, orm.MySQL)
		n, err := d.Execute(context.Background(), "delete from `users`", nil, true)
		require.NoError(t, err)
		require.Equal(t, int64(3), n)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("without autocommit wraps in transaction", func(t *testing.T) {
		t.Parallel()

		pool, mock := newMock(t)
		mock.ExpectBegin()
		mock.ExpectExec("delete from `users`").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		d := orm.New(pool, orm.MySQL)
		n, err := d.Execute(context.Background(), "delete from `users`", nil, false)
		require.NoError(t, err)
		require.Equal(t, int64(1), n)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on failure", func(t *testing.T) {
		t.Parallel()

		pool, mock := newMock(t)
		boom := errors.New("boom")
		mock.ExpectBegin()
		mock.ExpectExec("delete from `users`").WillReturnError(boom)
		mock.ExpectRollback()

		d := orm.New(pool, orm.MySQL)
		_, err := d.Execute(context.Background(), "delete from `users`", nil, false)
		require.ErrorIs(t, err, boom)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDB_Transaction(t *testing.T) {
	t.Parallel()

	t.Run("commits on success", func(t *testing.T) {
		t.Parallel()

		pool, mock := newMock(t)
		mock.ExpectBegin()
		mock.ExpectExec("delete from `notes` where `id`=?").
			WithArgs("n1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		d := orm.New(pool, orm.MySQL)
		notes := orm.NewTable[note](d, noteSchema)
		err := d.Transaction(context.Background(), func(tx *orm.DB) error {
			return notes.WithDB(tx).Remove(context.Background(), &note{ID: "n1"})
		})
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on error", func(t *testing.T) {
		t.Parallel()

		pool, mock := newMock(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		boom := errors.New("boom")
		d := orm.New(pool, orm.MySQL)
		err := d.Transaction(context.Background(), func(*orm.DB) error { return boom })
		require.ErrorIs(t, err, boom)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on panic", func(t *testing.T) {
		t.Parallel()

		pool, mock := newMock(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		d := orm.New(pool, orm.MySQL)
		require.Panics(t, func() {
			_ = d.Transaction(context.Background(), func(*orm.DB) error { panic("boom") })
		})
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
