package library

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
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

func (r *PostgresRepo) FindBook(ctx context.Context, title string) (Book, bool, error) {
	const query = `
		SELECT id, title, copies, version, created_at, updated_at
		FROM books
		WHERE title = $1
		LIMIT 1
	`
	var b Book
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query, title).Scan(
		&b.ID, &b.Title, &b.Copies, &b.Version, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, false, nil
		}
		return Book{}, false, err
	}
	return b, true, nil
}

// SaveBook inserts a new book or updates an existing one, guarded by its version.
func (r *PostgresRepo) SaveBook(ctx context.Context, book *Book) error {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	if book.ID == "" {
		return r.insertBook(timeoutCtx, book)
	}
	return r.updateBook(timeoutCtx, book)
}

func (r *PostgresRepo) insertBook(ctx context.Context, book *Book) error {
	const sql = `
		INSERT INTO books (title, copies, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT (title) DO NOTHING
		RETURNING id, version, created_at, updated_at`

	err := r.db.QueryRow(ctx, sql, book.Title, book.Copies).Scan(
		&book.ID, &book.Version, &book.CreatedAt, &book.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrConflict
	}
	return err
}

func (r *PostgresRepo) updateBook(ctx context.Context, book *Book) error {
	const sql = `
		UPDATE books
		SET copies = $1, version = version + 1, updated_at = NOW()
		WHERE id = $2 AND version = $3
		RETURNING version, updated_at`

	err := r.db.QueryRow(ctx, sql, book.Copies, book.ID, book.Version).Scan(&book.Version, &book.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrConflict
	}
	return err
}

func (r *PostgresRepo) GetAllBooks(ctx context.Context) ([]Book, error) {
	const query = `
		SELECT id, title, copies, version, created_at, updated_at
		FROM books
		ORDER BY created_at, id
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Book
	for rows.Next() {
		var b Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Copies, &b.Version, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
