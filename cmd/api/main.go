package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"libraryapi/internal/config"
	"libraryapi/internal/library"
	"libraryapi/internal/logger"
	"libraryapi/internal/member"
	"libraryapi/internal/notify"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

func main() {
	config.LoadEnvFiles()
	cfg := config.Load()

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: logger.ParseLogFormat(cfg.LogFormat)})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool := mustOpenDB(ctx, log, cfg.DatabaseDSN)
	defer dbPool.Close()

	bookRepository := library.NewPostgresRepo(dbPool, cfg.DBTimeout)
	memberService := member.NewService(member.NewPostgresRepo(dbPool, cfg.DBTimeout))
	loanEvents := notify.NewPostgresNotifier(dbPool, cfg.DBTimeout)
	notifier := notify.Multi{loanEvents, notify.NewLogNotifier(log)}

	libraryService := library.NewService(bookRepository, memberService, notifier)

	router := newRouter(routerDeps{
		db:       dbPool,
		books:    library.NewHTTPHandler(libraryService),
		members:  member.NewHTTPHandler(memberService, loanEvents),
		cfg:      cfg,
		log:      log,
		shutdown: ctx,
	})

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("graceful shutdown failed")
		}
	}()

	log.Info().Str("addr", cfg.Addr).Msg("starting server")
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server error")
	}
	log.Info().Msg("server stopped")
}

func mustOpenDB(ctx context.Context, log zerolog.Logger, dsn string) *pgxpool.Pool {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot create db pool")
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		log.Fatal().Err(err).Str("dsn", config.RedactDSN(dsn)).Msg("cannot ping database")
	}
	log.Info().Msg("database connection OK")
	return pool
}
