// Package migrate runs the goose SQL migrations under db/migrations against a pgx pool.
package migrate

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

const (
	CommandUp     = "up"
	CommandDown   = "down"
	CommandStatus = "status"
	CommandCreate = "create"
	CommandReset  = "reset"
)

// OpenDB exposes the pool as a database/sql handle, which is what goose speaks.
func OpenDB(pool *pgxpool.Pool) *sql.DB {
	return stdlib.OpenDBFromPool(pool)
}

// Run executes a single goose command. name is only used by create.
func Run(ctx context.Context, db *sql.DB, dir, command, name string) error {
	goose.SetBaseFS(nil)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	switch command {
	case CommandUp:
		return goose.UpContext(ctx, db, dir)
	case CommandDown:
		return goose.DownContext(ctx, db, dir)
	case CommandStatus:
		return goose.StatusContext(ctx, db, dir)
	case CommandReset:
		return goose.ResetContext(ctx, db, dir)
	case CommandCreate:
		if name == "" {
			return fmt.Errorf("name is required for %q", CommandCreate)
		}
		return goose.Create(nil, dir, name, "sql")
	default:
		return fmt.Errorf("unknown command %q, use: up, down, status, reset, create", command)
	}
}
