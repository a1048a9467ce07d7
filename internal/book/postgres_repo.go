package book

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres error codes the store maps onto field errors.
const (
	pgNotNullViolation = "23502"
	pgCheckViolation   = "23514"
)

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *PostgresRepo) Create(ctx context.Context, in Input) (Book, error) {
	if err := in.Validate(); err != nil {
		return Book{}, err
	}

	const query = `
		INSERT INTO books (title, author, genre, year)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	b := in.Book()
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query, b.Title, b.Author, b.Genre, b.Year).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return Book{}, translatePgError(err, in)
	}
	return b, nil
}

func (r *PostgresRepo) GetByID(ctx context.Context, id int64) (Book, error) {
	const query = `
		SELECT id, title, author, genre, year, created_at, updated_at
		FROM books
		WHERE id = $1
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	b, err := scanBook(r.db.QueryRow(timeoutCtx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, err
	}
	return b, nil
}

func (r *PostgresRepo) List(ctx context.Context, q Query) ([]Book, int, error) {
	countStmt, pageStmt, err := listStatements(dialectPostgres, "ILIKE", q)
	if err != nil {
		return nil, 0, fmt.Errorf("build list query: %w", err)
	}

	var total int
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	if err := r.db.QueryRow(timeoutCtx, countStmt.sql, countStmt.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	timeoutCtx2, cancel2 := r.withTimeout(ctx)
	defer cancel2()
	rows, err := r.db.Query(timeoutCtx2, pageStmt.sql, pageStmt.args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []Book{}
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, b)
	}
	return out, total, rows.Err()
}

func (r *PostgresRepo) Update(ctx context.Context, id int64, in Input) (Book, error) {
	if err := in.Validate(); err != nil {
		return Book{}, err
	}

	const query = `
		UPDATE books
		SET title = $2, author = $3, genre = $4, year = $5, updated_at = now()
		WHERE id = $1
		RETURNING id, title, author, genre, year, created_at, updated_at
	`
	b := in.Book()
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	updated, err := scanBook(r.db.QueryRow(timeoutCtx, query, id, b.Title, b.Author, b.Genre, b.Year))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, translatePgError(err, in)
	}
	return updated, nil
}

func (r *PostgresRepo) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM books WHERE id = $1`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	result, err := r.db.Exec(timeoutCtx, query, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepo) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

func scanBook(row pgx.Row) (Book, error) {
	var b Book
	err := row.Scan(&b.ID, &b.Title, &b.Author, &b.Genre, &b.Year, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

// translatePgError reports constraint violations on required columns as
// field errors, so rules enforced only by the schema still reach the form.
func translatePgError(err error, in Input) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	if pgErr.Code != pgNotNullViolation && pgErr.Code != pgCheckViolation {
		return err
	}

	field := pgErr.ColumnName
	switch pgErr.ConstraintName {
	case "books_title_not_blank":
		field = "title"
	case "books_author_not_blank":
		field = "author"
	}
	if field != "title" && field != "author" {
		return err
	}
	return newValidationError(in, FieldError{
		Field:   field,
		Message: fieldMessage(field, "required", ""),
	})
}
