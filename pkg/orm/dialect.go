package orm

import (
	"strconv"
	"strings"
)

// Dialect translates the canonical statement form (backtick identifiers,
// "?" placeholders) into the syntax of a database engine.
type Dialect interface {
	// Name returns the driver-facing dialect name, e.g. "mysql".
	Name() string

	// Rewrite converts a canonical statement into the engine's syntax.
	Rewrite(query string) string
}

// MySQL is the Dialect for MySQL / MariaDB. Statements pass through unchanged.
var MySQL Dialect = mysqlDialect{}

// PostgreSQL is the Dialect for PostgreSQL.
// Placeholders become $1, $2, ... and backticks become double quotes.
var PostgreSQL Dialect = postgresDialect{}

// DialectFor returns the dialect registered under name.
// Unknown names fall back to MySQL.
func DialectFor(name string) Dialect {
	switch strings.ToLower(name) {
	case "postgres", "postgresql", "pgx":
		return PostgreSQL
	default:
		return MySQL
	}
}

type mysqlDialect struct{}

func (mysqlDialect) Name() string                { return "mysql" }
func (mysqlDialect) Rewrite(query string) string { return query }

type postgresDialect struct{}

func (postgresDialect) Name() string { return "postgres" }

// Rewrite leaves single-quoted string literals untouched.
func (postgresDialect) Rewrite(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)

	idx := 1
	inLiteral := false
	for i := range len(query) {
		ch := query[i]
		switch {
		case ch == '\'':
			inLiteral = !inLiteral
			b.WriteByte(ch)
		case inLiteral:
			b.WriteByte(ch)
		case ch == '?':
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(idx))
			idx++
		case ch == '`':
			b.WriteByte('"')
		default:
			b.WriteByte(ch)
		}
	}
	return b.String()
}
