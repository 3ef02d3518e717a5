package notify

import (
	"context"

	"github.com/rs/zerolog"
)

// LogNotifier writes one structured log line per event.
type LogNotifier struct {
	log zerolog.Logger
}

func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log.With().Str("component", "notifier").Logger()}
}

func (n *LogNotifier) NotifyBorrow(ctx context.Context, memberID int64, title string) error {
	n.emit(ctx, "book_borrowed", memberID, title)
	return nil
}

func (n *LogNotifier) NotifyReturn(ctx context.Context, memberID int64, title string) error {
	n.emit(ctx, "book_returned", memberID, title)
	return nil
}

func (n *LogNotifier) emit(ctx context.Context, event string, memberID int64, title string) {
	n.log.Info().
		Ctx(ctx).
		Str("event", event).
		Int64("member_id", memberID).
		Str("title", title).
		Msg("loan event")
}
