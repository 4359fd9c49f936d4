package orm

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
)

// Model is implemented by entity structs.
//
// Values returns the current attribute values keyed by field name. An
// attribute left out of the row (or set to nil) is absent and its field
// default applies on save. Assign populates the struct from a row; it is
// called with database rows and with the values resolved on save.
type Model interface {
	Values() Row
	Assign(row Row) error
}

// Table provides CRUD operations for one entity type.
// PT is the pointer type of T and must implement Model.
type Table[T any, PT interface {
	*T
	Model
}] struct {
	db     *DB
	schema *Schema
	logger *slog.Logger
	mode   Mode
}

// TableOption configures a Table.
type TableOption func(*tableConfig)

type tableConfig struct {
	mode   *Mode
	logger *slog.Logger
}

// TableMode overrides the affected-rows mode inherited from the DB.
func TableMode(m Mode) TableOption {
	return func(c *tableConfig) {
		c.mode = &m
	}
}

// TableLogger overrides the logger inherited from the DB.
func TableLogger(l *slog.Logger) TableOption {
	return func(c *tableConfig) {
		c.logger = l
	}
}

// NewTable binds a schema to a DB.
//
// Example:
//
//	users := orm.NewTable[User](db, userSchema)
//	u, err := users.Find(ctx, "0015...")
func NewTable[T any, PT interface {
	*T
	Model
}](db *DB, schema *Schema, opts ...TableOption) *Table[T, PT] {
	cfg := &tableConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	t := &Table[T, PT]{
		db:     db,
		schema: schema,
		logger: db.logger,
		mode:   db.mode,
	}
	if cfg.mode != nil {
		t.mode = *cfg.mode
	}
	if cfg.logger != nil {
		t.logger = cfg.logger
	}
	return t
}

// Schema returns the table's schema.
func (t *Table[T, PT]) Schema() *Schema { return t.schema }

// WithDB returns a copy of the table bound to d, typically the
// transaction-scoped DB passed to a Transaction callback.
func (t *Table[T, PT]) WithDB(d *DB) *Table[T, PT] {
	c := *t
	c.db = d
	return &c
}

// Find looks an entity up by primary key.
// It returns nil and no error when no row matches.
func (t *Table[T, PT]) Find(ctx context.Context, pk any) (*T, error) {
	stmt := t.schema.SelectSQL() + " where " + quote(t.schema.PrimaryKey()) + "=?"
	rows, err := t.db.Select(ctx, stmt, []any{pk}, 1)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return t.build(rows[0])
}

// FindAll returns every entity matching the query options.
// The result is empty, never nil, when nothing matches.
func (t *Table[T, PT]) FindAll(ctx context.Context, opts ...QueryOption) ([]*T, error) {
	stmt, args, err := buildFindAll(t.schema.SelectSQL(), newQuery(opts))
	if err != nil {
		return nil, err
	}

	rows, err := t.db.Select(ctx, stmt, args, 0)
	if err != nil {
		return nil, err
	}

	out := make([]*T, 0, len(rows))
	for _, row := range rows {
		v, err := t.build(row)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// FindNumber evaluates a single select expression such as "count(id)".
// It returns nil when the query yields no row.
//
// Example:
//
//	n, err := blogs.FindNumber(ctx, "count(id)")
//	total, _ := orm.ToInt64(n)
func (t *Table[T, PT]) FindNumber(ctx context.Context, expr string, opts ...QueryOption) (any, error) {
	q := newQuery(opts)
	rows, err := t.db.Select(ctx, buildFindNumber(t.schema.Table(), expr, q), q.args, 1)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0][numberAlias], nil
}

// Save inserts the entity. Absent attributes take their field defaults,
// which are written back into the entity.
func (t *Table[T, PT]) Save(ctx context.Context, m PT) error {
	args, err := t.arguments(ctx, m, true)
	if err != nil {
		return err
	}
	n, err := t.db.Execute(ctx, t.schema.InsertSQL(), args, true)
	if err != nil {
		return err
	}
	return t.checkAffected(ctx, n, "failed to insert record")
}

// Update writes every non-key attribute of the entity by primary key.
func (t *Table[T, PT]) Update(ctx context.Context, m PT) error {
	args, err := t.arguments(ctx, m, false)
	if err != nil {
		return err
	}
	n, err := t.db.Execute(ctx, t.schema.UpdateSQL(), args, true)
	if err != nil {
		return err
	}
	return t.checkAffected(ctx, n, "failed to update by primary key")
}

// Remove deletes the entity by primary key.
func (t *Table[T, PT]) Remove(ctx context.Context, m PT) error {
	pk := t.schema.PrimaryKey()
	v := m.Values()[pk]
	if v == nil {
		return fmt.Errorf("%w: %s.%s", ErrMissingValue, t.schema.Entity(), pk)
	}
	n, err := t.db.Execute(ctx, t.schema.DeleteSQL(), []any{v}, true)
	if err != nil {
		return err
	}
	return t.checkAffected(ctx, n, "failed to remove by primary key")
}

// arguments returns the non-key values followed by the primary key, the
// order of the canned insert and update statements.
func (t *Table[T, PT]) arguments(ctx context.Context, m PT, withDefaults bool) ([]any, error) {
	values := m.Values()
	if values == nil {
		values = Row{}
	}
	names := append(t.schema.Fields(), t.schema.PrimaryKey())
	args := make([]any, 0, len(names))
	resolved := Row{}

	for _, name := range names {
		v := values[name]
		if v == nil && withDefaults {
			if f, ok := t.schema.Field(name); ok && f.HasDefault() {
				v = f.DefaultValue()
				resolved[name] = v
				t.logger.DebugContext(ctx, "using default value",
					slog.String("entity", t.schema.Entity()),
					slog.String("field", name),
					slog.Any("value", v),
				)
			}
		}
		args = append(args, v)
	}

	if args[len(args)-1] == nil {
		return nil, fmt.Errorf("%w: %s.%s", ErrMissingValue, t.schema.Entity(), t.schema.PrimaryKey())
	}

	if len(resolved) > 0 {
		merged := maps.Clone(values)
		maps.Copy(merged, resolved)
		if err := m.Assign(merged); err != nil {
			return nil, err
		}
	}
	return args, nil
}

func (t *Table[T, PT]) checkAffected(ctx context.Context, n int64, msg string) error {
	if n == 1 {
		return nil
	}
	if t.mode == Strict {
		return fmt.Errorf("%w: %s: affected rows: %d", ErrAffectedRows, msg, n)
	}
	t.logger.WarnContext(ctx, msg,
		slog.String("entity", t.schema.Entity()),
		slog.Int64("affected_rows", n),
	)
	return nil
}

func (t *Table[T, PT]) build(row Row) (*T, error) {
	v := new(T)
	if err := PT(v).Assign(row); err != nil {
		return nil, fmt.Errorf("%s: %w", t.schema.Entity(), err)
	}
	return v, nil
}
