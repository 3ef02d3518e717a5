// Package notify delivers borrow and return events raised by the library service.
package notify

import (
	"context"
	"time"

	"libraryapi/internal/library"
)

type Kind string

const (
	KindBorrow Kind = "BORROW"
	KindReturn Kind = "RETURN"
)

// LoanEvent is one borrow or return.
type LoanEvent struct {
	ID         string    `json:"id"`
	Kind       Kind      `json:"kind"`
	MemberID   int64     `json:"member_id"`
	Title      string    `json:"title"`
	OccurredAt time.Time `json:"occurred_at"`
}

var (
	_ library.Notifier = (*LogNotifier)(nil)
	_ library.Notifier = (*PostgresNotifier)(nil)
	_ library.Notifier = Multi(nil)
)

// Multi calls each notifier in order and stops at the first error.
type Multi []library.Notifier

func (m Multi) NotifyBorrow(ctx context.Context, memberID int64, title string) error {
	for _, n := range m {
		if err := n.NotifyBorrow(ctx, memberID, title); err != nil {
			return err
		}
	}
	return nil
}

func (m Multi) NotifyReturn(ctx context.Context, memberID int64, title string) error {
	for _, n := range m {
		if err := n.NotifyReturn(ctx, memberID, title); err != nil {
			return err
		}
	}
	return nil
}
