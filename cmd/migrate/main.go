package main

import (
	"context"
	"flag"
	"time"

	"libraryapi/internal/config"
	"libraryapi/internal/logger"
	"libraryapi/internal/platform/migrate"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	var (
		command = flag.String("command", migrate.CommandUp, "Migration command: up, down, status, reset, create")
		name    = flag.String("name", "", "Name for 'create' command")
	)
	flag.Parse()

	config.LoadEnvFiles()
	cfg := config.Load()
	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: logger.FormatConsole})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.Fatal().Err(err).Str("dsn", config.RedactDSN(cfg.DatabaseDSN)).Msg("failed to connect to database")
	}
	defer pool.Close()

	db := migrate.OpenDB(pool)
	defer db.Close()

	if err := migrate.Run(ctx, db, cfg.MigrationsDir, *command, *name); err != nil {
		log.Fatal().Err(err).Str("command", *command).Str("dir", cfg.MigrationsDir).Msg("migration failed")
	}
	log.Info().Str("command", *command).Str("dir", cfg.MigrationsDir).Msg("migration command finished")
}
