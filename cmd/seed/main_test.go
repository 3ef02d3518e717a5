package main

import (
	"context"
	"errors"
	"testing"

	"libraryapi/internal/library"

	"github.com/golang/mock/gomock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type stubSource struct {
	titles []string
	err    error
}

func (s stubSource) SearchTitles(context.Context, string, int) ([]string, error) {
	return s.titles, s.err
}

func TestLoadTitles(t *testing.T) {
	ctx := context.Background()
	log := zerolog.Nop()

	t.Run("no source uses the built-in list", func(t *testing.T) {
		assert.Equal(t, defaultTitles, loadTitles(ctx, log, nil, "", 10))
	})

	t.Run("source titles are used", func(t *testing.T) {
		got := loadTitles(ctx, log, stubSource{titles: []string{"Dune"}}, "scifi", 10)
		assert.Equal(t, []string{"Dune"}, got)
	})

	t.Run("source failure falls back", func(t *testing.T) {
		got := loadTitles(ctx, log, stubSource{err: errors.New("timeout")}, "scifi", 10)
		assert.Equal(t, defaultTitles, got)
	})

	t.Run("empty result falls back", func(t *testing.T) {
		got := loadTitles(ctx, log, stubSource{}, "scifi", 10)
		assert.Equal(t, defaultTitles, got)
	})
}

func TestSeedBooks_SkipsFailures(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	repo := library.NewMockRepository(ctrl)
	svc := library.NewService(repo, library.NewMockMemberService(ctrl), library.NewMockNotifier(ctrl))

	repo.EXPECT().FindBook(ctx, "Dune").Return(library.Book{}, false, nil)
	repo.EXPECT().SaveBook(ctx, gomock.Any()).Return(nil)
	repo.EXPECT().FindBook(ctx, "Emma").Return(library.Book{}, false, errors.New("down"))

	added := seedBooks(ctx, zerolog.Nop(), svc, []string{"Dune", "Emma", "  "}, 2)

	assert.Equal(t, 1, added)
}
