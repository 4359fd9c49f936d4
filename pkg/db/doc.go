// Package db opens the SQL connection pool used by the ORM.
//
// Two drivers are supported: MySQL through [github.com/go-sql-driver/mysql]
// (the default) and PostgreSQL through [github.com/jackc/pgx/v5/pgxpool],
// bridged to database/sql with pgx's stdlib adapter. Either way callers get
// a [Pool] embedding *sql.DB.
//
// # Configuration
//
// [Config] is loaded by pkg/config. Zero fields take defaults:
//
//	driver           mysql
//	host             127.0.0.1
//	port             3306 (5432 for postgres)
//	user             www-data
//	name             awesome
//	charset          utf8
//	max_open_conns   10
//	min_conns        1
//	retry_attempts   3
//	retry_interval   2s
//
// # Usage
//
//	pool, err := db.Open(ctx, cfg.Database)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	store := orm.New(pool.DB, orm.DialectFor(pool.Driver()))
//
// # Health Checks
//
// [Healthcheck] returns a closure for the readiness endpoint:
//
//	health.Readiness(health.Checks{"db": db.Healthcheck(pool)})
//
// # Migrations
//
// [Migrate] runs goose migrations from any fs.FS, usually an embedded
// directory selected by driver:
//
//	sub, _ := fs.Sub(migrations, "migrations/"+pool.Driver())
//	err := db.Migrate(ctx, pool, sub, "schema_migrations", logger)
//
// # Error Handling
//
//   - [ErrFailedToParseDBConfig] - invalid connection string
//   - [ErrFailedToOpenDBConnection] - connection failed after all retries
//   - [ErrUnsupportedDriver] - driver is neither mysql nor postgres
//   - [ErrHealthcheckFailed] - ping failed
//   - [ErrSetDialect], [ErrApplyMigrations] - migration failures
package db
