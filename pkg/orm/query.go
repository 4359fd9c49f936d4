package orm

// query collects the optional clauses of FindAll and FindNumber.
type query struct {
	limit   any
	where   string
	orderBy string
	args    []any
}

// QueryOption adds a clause to a query.
type QueryOption func(*query)

// Where sets the where clause. Use "?" for every argument.
//
// Example:
//
//	blogs.FindAll(ctx, orm.Where("`user_id`=?", uid), orm.OrderBy("created_at desc"))
func Where(clause string, args ...any) QueryOption {
	return func(q *query) {
		q.where = clause
		q.args = args
	}
}

// OrderBy sets the order by expression.
func OrderBy(expr string) QueryOption {
	return func(q *query) {
		q.orderBy = expr
	}
}

// Limit caps the result. v is either a row count (int) or an
// (offset, count) pair given as [2]int or a two-element []int.
// Any other value makes the query fail with ErrInvalidLimit.
func Limit(v any) QueryOption {
	return func(q *query) {
		q.limit = v
	}
}

func newQuery(opts []QueryOption) *query {
	q := &query{}
	for _, opt := range opts {
		opt(q)
	}
	return q
}
