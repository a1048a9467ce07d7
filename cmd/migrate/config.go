package main

import (
	"os"
	"path"

	"bookshelf/db"
)

// migrationsDir is where `create` writes new migration files for driver.
func migrationsDir(driver string) string {
	if v := os.Getenv("MIGRATIONS_DIR"); v != "" {
		return v
	}
	return path.Join("db", db.Dir(driver))
}
