package orm

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/dmitrymomot/awesome/pkg/logger"
)

// Mode selects how CRUD operations react when a statement affects a
// number of rows other than one.
type Mode int

const (
	// Lenient logs a warning and reports success.
	Lenient Mode = iota
	// Strict returns ErrAffectedRows.
	Strict
)

// DB executes canonical statements against a connection pool.
// It is created once by the composition root and shared by every Table.
type DB struct {
	pool    *sql.DB
	tx      *sql.Tx
	dialect Dialect
	logger  *slog.Logger
	mode    Mode
}

// Option configures a DB.
type Option func(*DB)

// WithLogger sets the logger used for statement and warning output.
func WithLogger(l *slog.Logger) Option {
	return func(d *DB) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithMode sets the default affected-rows mode for tables on this DB.
func WithMode(m Mode) Option {
	return func(d *DB) {
		d.mode = m
	}
}

// New wraps an open pool. The caller keeps ownership of the pool.
//
// Example:
//
//	pool, err := db.Open(ctx, cfg.Database)
//	orm.New(pool.DB, orm.DialectFor(pool.Driver()), orm.WithLogger(log))
func New(pool *sql.DB, dialect Dialect, opts ...Option) *DB {
	if dialect == nil {
		dialect = MySQL
	}
	d := &DB{
		pool:    pool,
		dialect: dialect,
		logger:  logger.NewNope(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dialect returns the dialect statements are rewritten with.
func (d *DB) Dialect() Dialect { return d.dialect }

// Mode returns the default affected-rows mode.
func (d *DB) Mode() Mode { return d.mode }

// querier is the subset shared by *sql.Conn and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Select runs a read query and returns the rows as column maps.
// When size is positive at most size rows are returned.
func (d *DB) Select(ctx context.Context, query string, args []any, size int) ([]Row, error) {
	d.logger.DebugContext(ctx, "sql select", slog.String("sql", query), slog.Int("args", len(args)))

	var rows []Row
	err := d.lease(ctx, func(q querier) error {
		rs, err := q.QueryContext(ctx, d.dialect.Rewrite(query), args...)
		if err != nil {
			return err
		}
		defer rs.Close()

		rows, err = scanRows(rs, size)
		return err
	})
	if err != nil {
		return nil, err
	}

	d.logger.DebugContext(ctx, "rows returned", slog.Int("count", len(rows)))
	return rows, nil
}

// Execute runs a write statement and returns the affected-row count.
// With autocommit disabled the statement is wrapped in its own
// transaction: rolled back on failure, committed on success.
// Inside Transaction the surrounding transaction is used as is.
func (d *DB) Execute(ctx context.Context, query string, args []any, autocommit bool) (int64, error) {
	d.logger.DebugContext(ctx, "sql execute", slog.String("sql", query), slog.Int("args", len(args)))

	stmt := d.dialect.Rewrite(query)
	var affected int64

	if d.tx != nil || autocommit {
		err := d.lease(ctx, func(q querier) error {
			n, err := exec(ctx, q, stmt, args)
			affected = n
			return err
		})
		return affected, err
	}

	conn, err := d.pool.Conn(ctx)
	if err != nil {
		return 0, err
	}
	defer conn.Close()

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	affected, err = exec(ctx, tx, stmt, args)
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			d.logger.ErrorContext(ctx, "rollback failed", slog.Any("error", rbErr))
		}
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return affected, nil
}

// Transaction runs fn with a DB bound to a single transaction.
// The transaction is rolled back if fn returns an error or panics.
func (d *DB) Transaction(ctx context.Context, fn func(tx *DB) error) error {
	if d.tx != nil {
		return fn(d)
	}

	tx, err := d.pool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	bound := *d
	bound.tx = tx
	if err := fn(&bound); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, rbErr)
		}
		return err
	}
	return tx.Commit()
}

// lease hands fn a connection for the duration of the call and always
// returns it to the pool.
func (d *DB) lease(ctx context.Context, fn func(q querier) error) error {
	if d.tx != nil {
		return fn(d.tx)
	}
	conn, err := d.pool.Conn(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()
	return fn(conn)
}

func exec(ctx context.Context, q querier, stmt string, args []any) (int64, error) {
	res, err := q.ExecContext(ctx, stmt, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func scanRows(rs *sql.Rows, size int) ([]Row, error) {
	cols, err := rs.Columns()
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0)
	for rs.Next() {
		if size > 0 && len(rows) >= size {
			break
		}
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rs.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make(Row, len(cols))
		for i, c := range cols {
			row[c] = values[i]
		}
		rows = append(rows, row)
	}
	return rows, rs.Err()
}
