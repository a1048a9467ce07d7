package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"bookshelf/db"

	"github.com/pressly/goose/v3"
)

// Dialect names accepted by NewMigrator.
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite3"
)

// NewMigrator returns a goose provider over the embedded migrations for
// dialect.
func NewMigrator(conn *sql.DB, dialect string) (*goose.Provider, error) {
	var d goose.Dialect
	switch dialect {
	case DialectPostgres:
		d = goose.DialectPostgres
	case DialectSQLite:
		d = goose.DialectSQLite3
	default:
		return nil, fmt.Errorf("unsupported migration dialect %q", dialect)
	}

	fsys, err := db.Migrations(dialect)
	if err != nil {
		return nil, fmt.Errorf("load migrations: %w", err)
	}
	return goose.NewProvider(d, conn, fsys)
}

// Migrate applies every pending migration.
func Migrate(ctx context.Context, conn *sql.DB, dialect string) error {
	provider, err := NewMigrator(conn, dialect)
	if err != nil {
		return err
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	for _, res := range results {
		log.Printf("migration applied version=%d duration_ms=%d", res.Source.Version, res.Duration.Milliseconds())
	}
	return nil
}
