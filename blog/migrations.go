package blog

import (
	"embed"
	"io/fs"
)

//go:embed migrations
var migrationsFS embed.FS

// Migrations returns the goose migrations for driver ("mysql" or "postgres").
func Migrations(driver string) (fs.FS, error) {
	if driver != "postgres" {
		driver = "mysql"
	}
	return fs.Sub(migrationsFS, "migrations/"+driver)
}
