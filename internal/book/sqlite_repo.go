package book

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// SQLiteRepo stores books in a SQLite database through sqlx.
type SQLiteRepo struct {
	db      *sqlx.DB
	timeout time.Duration
	now     func() time.Time
}

func NewSQLiteRepo(db *sqlx.DB, timeout time.Duration) *SQLiteRepo {
	return &SQLiteRepo{db: db, timeout: timeout, now: time.Now}
}

func (r *SQLiteRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *SQLiteRepo) Create(ctx context.Context, in Input) (Book, error) {
	if err := in.Validate(); err != nil {
		return Book{}, err
	}

	const query = `
		INSERT INTO books (title, author, genre, year, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	b := in.Book()
	b.CreatedAt = r.now().UTC()
	b.UpdatedAt = b.CreatedAt

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	res, err := r.db.ExecContext(timeoutCtx, query, b.Title, b.Author, b.Genre, b.Year, b.CreatedAt, b.UpdatedAt)
	if err != nil {
		return Book{}, err
	}
	if b.ID, err = res.LastInsertId(); err != nil {
		return Book{}, fmt.Errorf("read inserted id: %w", err)
	}
	return b, nil
}

func (r *SQLiteRepo) GetByID(ctx context.Context, id int64) (Book, error) {
	const query = `
		SELECT id, title, author, genre, year, created_at, updated_at
		FROM books
		WHERE id = ?
	`
	var b Book
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	if err := r.db.GetContext(timeoutCtx, &b, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, err
	}
	return b, nil
}

func (r *SQLiteRepo) List(ctx context.Context, q Query) ([]Book, int, error) {
	countStmt, pageStmt, err := listStatements(dialectSQLite, "LIKE", q)
	if err != nil {
		return nil, 0, fmt.Errorf("build list query: %w", err)
	}

	var total int
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	if err := r.db.GetContext(timeoutCtx, &total, countStmt.sql, countStmt.args...); err != nil {
		return nil, 0, err
	}

	out := []Book{}
	if err := r.db.SelectContext(timeoutCtx, &out, pageStmt.sql, pageStmt.args...); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *SQLiteRepo) Update(ctx context.Context, id int64, in Input) (Book, error) {
	if err := in.Validate(); err != nil {
		return Book{}, err
	}

	const query = `
		UPDATE books
		SET title = ?, author = ?, genre = ?, year = ?, updated_at = ?
		WHERE id = ?
	`
	b := in.Book()
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	res, err := r.db.ExecContext(timeoutCtx, query, b.Title, b.Author, b.Genre, b.Year, r.now().UTC(), id)
	if err != nil {
		return Book{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return Book{}, err
	}
	if n == 0 {
		return Book{}, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *SQLiteRepo) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM books WHERE id = ?`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	res, err := r.db.ExecContext(timeoutCtx, query, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SQLiteRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
