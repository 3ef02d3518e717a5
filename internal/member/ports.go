package member

import (
	"context"

	"libraryapi/internal/notify"
)

type Repository interface {
	Create(ctx context.Context, m *Member) error
	GetByID(ctx context.Context, id int64) (Member, error)
	IsActive(ctx context.Context, id int64) (bool, error)
	SetStatus(ctx context.Context, id int64, status Status) error
}

// LoanHistory reads the borrow/return events recorded for a member.
type LoanHistory interface {
	ListByMember(ctx context.Context, memberID int64, limit int) ([]notify.LoanEvent, error)
}
