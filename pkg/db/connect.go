package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
)

// Pool is a database/sql pool plus the driver it was opened with.
// For postgres the connections are owned by a pgxpool.Pool shared with
// the *sql.DB.
type Pool struct {
	*sql.DB
	driver string
	pgx    *pgxpool.Pool
}

// FromDB wraps an already open *sql.DB.
func FromDB(db *sql.DB, driver string) *Pool {
	return &Pool{DB: db, driver: driver}
}

// Driver returns the driver name, "mysql" or "postgres".
func (p *Pool) Driver() string { return p.driver }

// Close closes the pool and, for postgres, the underlying pgx pool.
func (p *Pool) Close() error {
	err := p.DB.Close()
	if p.pgx != nil {
		p.pgx.Close()
	}
	return err
}

// Open establishes a connection pool with retry logic.
// Attempt n waits n*RetryInterval before the next try, so services
// restarting together do not hit the database at the same moment.
func Open(ctx context.Context, cfg Config) (*Pool, error) {
	cfg = cfg.WithDefaults()

	var dial func(context.Context) (*Pool, error)
	switch cfg.Driver {
	case DriverMySQL:
		dial = func(ctx context.Context) (*Pool, error) { return openMySQL(ctx, cfg) }
	case DriverPostgres:
		dial = func(ctx context.Context) (*Pool, error) { return openPostgres(ctx, cfg) }
	default:
		return nil, errors.Join(ErrUnsupportedDriver, errors.New(cfg.Driver))
	}

	var lastErr error
	for i := range cfg.RetryAttempts {
		pool, err := dial(ctx)
		if err == nil {
			return pool, nil
		}
		if errors.Is(err, ErrFailedToParseDBConfig) {
			return nil, err
		}
		lastErr = err

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrFailedToOpenDBConnection, ctx.Err())
		case <-time.After(time.Duration(i+1) * cfg.RetryInterval):
		}
	}

	return nil, errors.Join(ErrFailedToOpenDBConnection, lastErr)
}

func openMySQL(ctx context.Context, cfg Config) (*Pool, error) {
	dsn, err := cfg.DSN()
	if err != nil {
		return nil, err
	}
	mc, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseDBConfig, err)
	}
	connector, err := mysql.NewConnector(mc)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseDBConfig, err)
	}

	db := sql.OpenDB(connector)
	db.SetMaxOpenConns(int(cfg.MaxOpenConns))
	db.SetMaxIdleConns(int(cfg.MinConns))
	db.SetConnMaxIdleTime(cfg.MaxConnIdleTime)
	db.SetConnMaxLifetime(cfg.MaxConnLifetime)

	// Verify with a real ping to catch authentication and permission issues.
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Pool{DB: db, driver: DriverMySQL}, nil
}

func openPostgres(ctx context.Context, cfg Config) (*Pool, error) {
	dsn, err := cfg.DSN()
	if err != nil {
		return nil, err
	}
	pc, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseDBConfig, err)
	}
	pc.MaxConns = cfg.MaxOpenConns
	pc.MinConns = cfg.MinConns
	pc.MaxConnIdleTime = cfg.MaxConnIdleTime
	pc.MaxConnLifetime = cfg.MaxConnLifetime

	pp, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, err
	}
	if err := pp.Ping(ctx); err != nil {
		pp.Close()
		return nil, err
	}

	// OpenDBFromPool shares the pgx connections; Pool.Close releases both.
	return &Pool{DB: stdlib.OpenDBFromPool(pp), driver: DriverPostgres, pgx: pp}, nil
}
