package notify

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresNotifier appends every event to the loan_events table.
type PostgresNotifier struct {
	db      *pgxpool.Pool
	timeout time.Duration
	now     func() time.Time
}

func NewPostgresNotifier(db *pgxpool.Pool, timeout time.Duration) *PostgresNotifier {
	return &PostgresNotifier{db: db, timeout: timeout, now: time.Now}
}

func (n *PostgresNotifier) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, n.timeout)
}

func (n *PostgresNotifier) NotifyBorrow(ctx context.Context, memberID int64, title string) error {
	return n.record(ctx, KindBorrow, memberID, title)
}

func (n *PostgresNotifier) NotifyReturn(ctx context.Context, memberID int64, title string) error {
	return n.record(ctx, KindReturn, memberID, title)
}

func (n *PostgresNotifier) record(ctx context.Context, kind Kind, memberID int64, title string) error {
	const sql = `
		INSERT INTO loan_events (id, kind, member_id, title, occurred_at)
		VALUES ($1, $2, $3, $4, $5)`

	timeoutCtx, cancel := n.withTimeout(ctx)
	defer cancel()
	_, err := n.db.Exec(timeoutCtx, sql, uuid.NewString(), string(kind), memberID, title, n.now().UTC())
	return err
}

// ListByMember returns the member's most recent events first.
func (n *PostgresNotifier) ListByMember(ctx context.Context, memberID int64, limit int) ([]LoanEvent, error) {
	const query = `
		SELECT id, kind, member_id, title, occurred_at
		FROM loan_events
		WHERE member_id = $1
		ORDER BY occurred_at DESC, id
		LIMIT $2`

	timeoutCtx, cancel := n.withTimeout(ctx)
	defer cancel()
	rows, err := n.db.Query(timeoutCtx, query, memberID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []LoanEvent{}
	for rows.Next() {
		var (
			e    LoanEvent
			kind string
		)
		if err := rows.Scan(&e.ID, &kind, &e.MemberID, &e.Title, &e.OccurredAt); err != nil {
			return nil, err
		}
		e.Kind = Kind(kind)
		out = append(out, e)
	}
	return out, rows.Err()
}
