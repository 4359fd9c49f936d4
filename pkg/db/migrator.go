package db

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/pressly/goose/v3"
)

// Migrate applies every pending migration found at the root of migrations.
// The goose dialect follows the pool driver.
func Migrate(ctx context.Context, pool *Pool, migrations fs.FS, migrationTable string, log *slog.Logger) error {
	goose.SetBaseFS(migrations)
	goose.SetLogger(&gooseLoggerAdapter{log})
	if migrationTable != "" {
		goose.SetTableName(migrationTable)
	}

	if err := goose.SetDialect(pool.Driver()); err != nil {
		return errors.Join(ErrSetDialect, err)
	}

	if err := goose.UpContext(ctx, pool.DB, "."); err != nil {
		return errors.Join(ErrApplyMigrations, err)
	}

	return nil
}

type gooseLoggerAdapter struct {
	log *slog.Logger
}

func (g *gooseLoggerAdapter) Printf(format string, args ...any) {
	g.log.Info(fmt.Sprintf(format, args...))
}

func (g *gooseLoggerAdapter) Fatalf(format string, args ...any) {
	// goose returns the error as well, so logging is enough here.
	g.log.Error(fmt.Sprintf(format, args...))
}
