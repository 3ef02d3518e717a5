package library

//go:generate mockgen -source=ports.go -destination=mock_ports.go -package=library

import (
	"context"
)

// Repository defines the contract for book storage.
type Repository interface {
	// FindBook looks a book up by title. found is false when no book has that title.
	FindBook(ctx context.Context, title string) (book Book, found bool, err error)
	// SaveBook inserts a book without an ID or updates the one it was read as.
	// It returns ErrConflict when another writer got there first.
	SaveBook(ctx context.Context, book *Book) error
	GetAllBooks(ctx context.Context) ([]Book, error)
}

// MemberService decides whether a member may borrow.
type MemberService interface {
	IsValidMember(ctx context.Context, memberID int64) (bool, error)
}

// Notifier is told about every successful borrow and return.
type Notifier interface {
	NotifyBorrow(ctx context.Context, memberID int64, title string) error
	NotifyReturn(ctx context.Context, memberID int64, title string) error
}
