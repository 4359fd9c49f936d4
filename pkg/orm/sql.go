package orm

import (
	"fmt"
	"strings"
)

// quote wraps an identifier in backticks. Dialects that use another
// quoting style rewrite it at execution time.
func quote(name string) string {
	return "`" + name + "`"
}

func quoteAll(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = quote(n)
	}
	return out
}

func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func buildSelect(table, pk string, fields []string) string {
	var b strings.Builder
	b.WriteString("select ")
	b.WriteString(quote(pk))
	for _, f := range fields {
		b.WriteString(", ")
		b.WriteString(quote(f))
	}
	b.WriteString(" from ")
	b.WriteString(quote(table))
	return b.String()
}

func buildInsert(table, pk string, fields []string) string {
	cols := append(quoteAll(fields), quote(pk))

	var b strings.Builder
	b.WriteString("insert into ")
	b.WriteString(quote(table))
	b.WriteString(" (")
	b.WriteString(strings.Join(cols, ", "))
	b.WriteString(") values (")
	b.WriteString(placeholders(len(cols)))
	b.WriteString(")")
	return b.String()
}

func buildUpdate(table, pk string, fields []string) string {
	sets := make([]string, len(fields))
	for i, f := range fields {
		sets[i] = quote(f) + "=?"
	}

	var b strings.Builder
	b.WriteString("update ")
	b.WriteString(quote(table))
	b.WriteString(" set ")
	b.WriteString(strings.Join(sets, ", "))
	b.WriteString(" where ")
	b.WriteString(quote(pk))
	b.WriteString("=?")
	return b.String()
}

func buildDelete(table, pk string) string {
	return "delete from " + quote(table) + " where " + quote(pk) + "=?"
}

// buildFindAll appends the optional clauses of a query to base.
// It returns the statement and the argument list including limit values.
func buildFindAll(base string, q *query) (string, []any, error) {
	var b strings.Builder
	b.WriteString(base)
	args := append([]any(nil), q.args...)

	if q.where != "" {
		b.WriteString(" where ")
		b.WriteString(q.where)
	}
	if q.orderBy != "" {
		b.WriteString(" order by ")
		b.WriteString(q.orderBy)
	}
	if q.limit != nil {
		offset, count, paged, err := parseLimit(q.limit)
		if err != nil {
			return "", nil, err
		}
		b.WriteString(" limit ?")
		args = append(args, count)
		if paged {
			b.WriteString(" offset ?")
			args = append(args, offset)
		}
	}
	return b.String(), args, nil
}

func buildFindNumber(table, expr string, q *query) string {
	var b strings.Builder
	b.WriteString("select ")
	b.WriteString(expr)
	b.WriteString(" ")
	b.WriteString(numberAlias)
	b.WriteString(" from ")
	b.WriteString(quote(table))
	if q.where != "" {
		b.WriteString(" where ")
		b.WriteString(q.where)
	}
	return b.String()
}

// numberAlias names the computed column of FindNumber.
const numberAlias = "_num_"

// parseLimit accepts a row cap or an (offset, count) pair.
func parseLimit(v any) (offset, count int, paged bool, err error) {
	switch l := v.(type) {
	case int:
		return 0, l, false, nil
	case int64:
		return 0, int(l), false, nil
	case [2]int:
		return l[0], l[1], true, nil
	case []int:
		if len(l) == 2 {
			return l[0], l[1], true, nil
		}
	}
	return 0, 0, false, fmt.Errorf("%w: %#v", ErrInvalidLimit, v)
}
