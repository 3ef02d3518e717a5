package library

import (
	"context"
	"testing"
	"time"

	"libraryapi/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresRepo(t *testing.T) {
	db := testutil.MigratedTestDB(t)
	repo := NewPostgresRepo(db, 2*time.Second)
	ctx := context.Background()

	t.Run("find missing title", func(t *testing.T) {
		_, found, err := repo.FindBook(ctx, "Missing")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("save then find", func(t *testing.T) {
		book := &Book{Title: "Dune", Copies: 2}
		require.NoError(t, repo.SaveBook(ctx, book))
		assert.NotEmpty(t, book.ID)
		assert.False(t, book.CreatedAt.IsZero())

		got, found, err := repo.FindBook(ctx, "Dune")
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, book.ID, got.ID)
		assert.Equal(t, 2, got.Copies)
	})

	t.Run("save overwrites copies of the same title", func(t *testing.T) {
		got, _, err := repo.FindBook(ctx, "Dune")
		require.NoError(t, err)

		got.Copies = 5
		require.NoError(t, repo.SaveBook(ctx, &got))

		again, _, err := repo.FindBook(ctx, "Dune")
		require.NoError(t, err)
		assert.Equal(t, got.ID, again.ID)
		assert.Equal(t, 5, again.Copies)
	})

	t.Run("stale update is rejected", func(t *testing.T) {
		first, _, err := repo.FindBook(ctx, "Dune")
		require.NoError(t, err)
		second := first

		first.Copies--
		require.NoError(t, repo.SaveBook(ctx, &first))

		second.Copies--
		err = repo.SaveBook(ctx, &second)
		assert.ErrorIs(t, err, ErrConflict)

		stored, _, err := repo.FindBook(ctx, "Dune")
		require.NoError(t, err)
		assert.Equal(t, first.Copies, stored.Copies)
		assert.Equal(t, first.Version, stored.Version)
	})

	t.Run("second insert of a title is rejected", func(t *testing.T) {
		err := repo.SaveBook(ctx, &Book{Title: "Dune", Copies: 9})
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("negative copies are refused", func(t *testing.T) {
		err := repo.SaveBook(ctx, &Book{Title: "Broken", Copies: -1})
		assert.Error(t, err)
	})

	t.Run("all books in insertion order", func(t *testing.T) {
		require.NoError(t, repo.SaveBook(ctx, &Book{Title: "Emma", Copies: 0}))
		require.NoError(t, repo.SaveBook(ctx, &Book{Title: "Beloved", Copies: 1}))

		books, err := repo.GetAllBooks(ctx)
		require.NoError(t, err)

		titles := make([]string, 0, len(books))
		for _, b := range books {
			titles = append(titles, b.Title)
		}
		assert.Equal(t, []string{"Dune", "Emma", "Beloved"}, titles)
	})
}

func TestPostgresRepo_ConcurrentBorrowOfLastCopy(t *testing.T) {
	db := testutil.MigratedTestDB(t)
	repo := NewPostgresRepo(db, 2*time.Second)
	ctx := context.Background()

	require.NoError(t, repo.SaveBook(ctx, &Book{Title: "Dune", Copies: 1}))

	// Both borrowers read the book before either writes.
	a, _, err := repo.FindBook(ctx, "Dune")
	require.NoError(t, err)
	b, _, err := repo.FindBook(ctx, "Dune")
	require.NoError(t, err)

	a.Copies--
	b.Copies--
	errA := repo.SaveBook(ctx, &a)
	errB := repo.SaveBook(ctx, &b)

	require.NoError(t, errA)
	assert.ErrorIs(t, errB, ErrConflict)

	stored, _, err := repo.FindBook(ctx, "Dune")
	require.NoError(t, err)
	assert.Equal(t, 0, stored.Copies)
}
