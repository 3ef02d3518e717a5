package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"libraryapi/internal/testutil"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) NotifyBorrow(ctx context.Context, memberID int64, title string) error {
	args := m.Called(ctx, memberID, title)
	return args.Error(0)
}

func (m *mockNotifier) NotifyReturn(ctx context.Context, memberID int64, title string) error {
	args := m.Called(ctx, memberID, title)
	return args.Error(0)
}

func TestMulti(t *testing.T) {
	ctx := context.Background()

	t.Run("calls every notifier", func(t *testing.T) {
		a, b := new(mockNotifier), new(mockNotifier)
		a.On("NotifyBorrow", ctx, int64(1), "Dune").Return(nil)
		b.On("NotifyBorrow", ctx, int64(1), "Dune").Return(nil)
		a.On("NotifyReturn", ctx, int64(1), "Dune").Return(nil)
		b.On("NotifyReturn", ctx, int64(1), "Dune").Return(nil)

		m := Multi{a, b}
		require.NoError(t, m.NotifyBorrow(ctx, 1, "Dune"))
		require.NoError(t, m.NotifyReturn(ctx, 1, "Dune"))

		a.AssertExpectations(t)
		b.AssertExpectations(t)
	})

	t.Run("stops at the first error", func(t *testing.T) {
		a, b := new(mockNotifier), new(mockNotifier)
		boom := errors.New("boom")
		a.On("NotifyBorrow", ctx, int64(1), "Dune").Return(boom)

		err := Multi{a, b}.NotifyBorrow(ctx, 1, "Dune")

		assert.ErrorIs(t, err, boom)
		b.AssertNotCalled(t, "NotifyBorrow", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("empty is a no-op", func(t *testing.T) {
		assert.NoError(t, Multi(nil).NotifyReturn(ctx, 1, "Dune"))
	})
}

func TestLogNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := NewLogNotifier(zerolog.New(&buf))

	require.NoError(t, n.NotifyBorrow(context.Background(), 9, "Emma"))
	require.NoError(t, n.NotifyReturn(context.Background(), 9, "Emma"))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	var borrow, ret map[string]interface{}
	require.NoError(t, json.Unmarshal(lines[0], &borrow))
	require.NoError(t, json.Unmarshal(lines[1], &ret))

	assert.Equal(t, "book_borrowed", borrow["event"])
	assert.Equal(t, float64(9), borrow["member_id"])
	assert.Equal(t, "Emma", borrow["title"])
	assert.Equal(t, "notifier", borrow["component"])
	assert.Equal(t, "book_returned", ret["event"])
}

func TestPostgresNotifier(t *testing.T) {
	db := testutil.MigratedTestDB(t)
	n := NewPostgresNotifier(db, 2*time.Second)
	ctx := context.Background()

	base := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)
	tick := 0
	n.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	require.NoError(t, n.NotifyBorrow(ctx, 1, "Dune"))
	require.NoError(t, n.NotifyReturn(ctx, 1, "Dune"))
	require.NoError(t, n.NotifyBorrow(ctx, 2, "Emma"))

	events, err := n.ListByMember(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, KindReturn, events[0].Kind)
	assert.Equal(t, KindBorrow, events[1].Kind)
	assert.Equal(t, "Dune", events[1].Title)
	assert.NotEmpty(t, events[0].ID)

	limited, err := n.ListByMember(ctx, 1, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	none, err := n.ListByMember(ctx, 99, 10)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}
