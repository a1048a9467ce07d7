// Package db embeds the goose SQL migrations for every supported dialect.
package db

import (
	"embed"
	"io/fs"
)

//go:embed migrations
var migrations embed.FS

// Migrations returns the migration files for a goose dialect ("postgres" or
// "sqlite3") rooted at the directory that holds them.
func Migrations(dialect string) (fs.FS, error) {
	return fs.Sub(migrations, Dir(dialect))
}

// Dir is the repository-relative directory of a dialect's migrations.
func Dir(dialect string) string {
	if dialect == "sqlite3" || dialect == "sqlite" {
		return "migrations/sqlite"
	}
	return "migrations/postgres"
}
