// Package storage opens the book store selected by DB_DRIVER.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"bookshelf/internal/book"
	"bookshelf/internal/config"
	"bookshelf/internal/platform/database"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// ErrNoMigrations is returned by Migrator for stores without a schema.
var ErrNoMigrations = errors.New("storage driver has no migrations")

// Repository is a book store that can report its health.
type Repository interface {
	book.Repository
	Ping(ctx context.Context) error
}

// Store is an open book store and the connections behind it.
type Store struct {
	Repo    Repository
	Driver  string
	dialect string
	sqlDB   *sql.DB
	closers []func()
}

// Open connects to the store named by cfg.DBDriver.
func Open(ctx context.Context, cfg config.Config) (*Store, error) {
	s := &Store{Driver: cfg.DBDriver}

	switch cfg.DBDriver {
	case config.DriverPostgres:
		pool, err := database.OpenPostgres(ctx, cfg.DBDSN, database.PoolConfig{MaxConns: cfg.DBMaxConns})
		if err != nil {
			return nil, err
		}
		s.sqlDB = stdlib.OpenDBFromPool(pool)
		s.dialect = database.DialectPostgres
		s.closers = append(s.closers, pool.Close, func() { _ = s.sqlDB.Close() })
		s.Repo = book.NewPostgresRepo(pool, cfg.QueryTimeout)

	case config.DriverSQLite:
		db, err := database.OpenSQLite(ctx, cfg.DBDSN)
		if err != nil {
			return nil, err
		}
		s.sqlDB = db.DB
		s.dialect = database.DialectSQLite
		s.closers = append(s.closers, func() { _ = db.Close() })
		s.Repo = book.NewSQLiteRepo(db, cfg.QueryTimeout)

	case config.DriverMemory:
		s.Repo = book.NewMemoryRepo()

	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	log.Printf("storage opened driver=%s dsn=%s", cfg.DBDriver, database.RedactDSN(cfg.DBDSN))
	return s, nil
}

// Migrate applies pending migrations. The memory store needs none.
func (s *Store) Migrate(ctx context.Context) error {
	if s.sqlDB == nil {
		return nil
	}
	return database.Migrate(ctx, s.sqlDB, s.dialect)
}

// Migrator returns a goose provider for the store's schema.
func (s *Store) Migrator() (*goose.Provider, error) {
	if s.sqlDB == nil {
		return nil, ErrNoMigrations
	}
	return database.NewMigrator(s.sqlDB, s.dialect)
}

// Dialect returns the migration dialect, or "" for the memory store.
func (s *Store) Dialect() string {
	return s.dialect
}

// Close releases connections in reverse order of opening.
func (s *Store) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
	s.closers = nil
}
