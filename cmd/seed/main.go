package main

import (
	"context"
	"errors"
	"flag"
	"time"

	"libraryapi/internal/config"
	"libraryapi/internal/library"
	"libraryapi/internal/logger"
	"libraryapi/internal/member"
	"libraryapi/internal/notify"
	"libraryapi/internal/platform/openlibrary"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

var defaultTitles = []string{
	"The Go Programming Language",
	"Designing Data-Intensive Applications",
	"The Pragmatic Programmer",
	"Structure and Interpretation of Computer Programs",
	"Dune",
	"The Left Hand of Darkness",
	"A Wizard of Earthsea",
	"Neuromancer",
	"The Name of the Rose",
	"One Hundred Years of Solitude",
}

type seedMember struct {
	name  string
	email string
}

var defaultMembers = []seedMember{
	{name: "Ada Lovelace", email: "ada@example.com"},
	{name: "Alan Turing", email: "alan@example.com"},
	{name: "Grace Hopper", email: "grace@example.com"},
}

type titleSource interface {
	SearchTitles(ctx context.Context, subject string, limit int) ([]string, error)
}

func main() {
	var (
		subject = flag.String("subject", "", "Open Library subject to pull titles from; built-in list when empty")
		limit   = flag.Int("limit", 50, "Maximum number of titles to fetch")
		copies  = flag.Int("copies", 2, "Copies added per title")
	)
	flag.Parse()

	config.LoadEnvFiles()
	cfg := config.Load()
	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: logger.FormatConsole})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.Fatal().Err(err).Str("dsn", config.RedactDSN(cfg.DatabaseDSN)).Msg("failed to connect to database")
	}
	defer pool.Close()

	members := member.NewService(member.NewPostgresRepo(pool, cfg.DBTimeout))
	books := library.NewService(library.NewPostgresRepo(pool, cfg.DBTimeout), members, notify.NewLogNotifier(log))

	var source titleSource
	if *subject != "" {
		source = openlibrary.NewClient(openlibrary.DefaultBaseURL, "libraryapi-seed/1.0", cfg.OpenLibraryRPS, 3)
	}
	titles := loadTitles(ctx, log, source, *subject, *limit)

	added := seedBooks(ctx, log, books, titles, *copies)
	registered := seedMembers(ctx, log, members, defaultMembers)

	log.Info().Int("books", added).Int("members", registered).Msg("seed finished")
}

// loadTitles falls back to the built-in list when no source is configured or the source fails.
func loadTitles(ctx context.Context, log zerolog.Logger, source titleSource, subject string, limit int) []string {
	if source == nil {
		return defaultTitles
	}
	titles, err := source.SearchTitles(ctx, subject, limit)
	if err != nil {
		log.Warn().Err(err).Str("subject", subject).Msg("open library search failed, using built-in titles")
		return defaultTitles
	}
	if len(titles) == 0 {
		log.Warn().Str("subject", subject).Msg("no titles found, using built-in titles")
		return defaultTitles
	}
	return titles
}

func seedBooks(ctx context.Context, log zerolog.Logger, books *library.Service, titles []string, copies int) int {
	added := 0
	for _, title := range titles {
		if err := books.AddBook(ctx, title, copies); err != nil {
			log.Error().Err(err).Str("title", title).Msg("add book failed")
			continue
		}
		added++
	}
	return added
}

func seedMembers(ctx context.Context, log zerolog.Logger, members *member.Service, seed []seedMember) int {
	registered := 0
	for _, m := range seed {
		created, err := members.Register(ctx, m.name, m.email)
		if errors.Is(err, member.ErrAlreadyExists) {
			log.Debug().Str("email", m.email).Msg("member already registered")
			continue
		}
		if err != nil {
			log.Error().Err(err).Str("email", m.email).Msg("register member failed")
			continue
		}
		log.Info().Int64("member_id", created.ID).Str("email", created.Email).Msg("member registered")
		registered++
	}
	return registered
}
