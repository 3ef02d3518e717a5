package library

import (
	"context"
	"fmt"
	"strings"
)

// Service provides the lending rules over a book repository.
type Service struct {
	repo     Repository
	members  MemberService
	notifier Notifier
}

// NewService creates a new library service.
func NewService(repo Repository, members MemberService, notifier Notifier) *Service {
	return &Service{
		repo:     repo,
		members:  members,
		notifier: notifier,
	}
}

// AddBook puts copies of a title into circulation, creating the book when it is new.
func (s *Service) AddBook(ctx context.Context, title string, copies int) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title must not be empty", ErrInvalidArgument)
	}
	if copies <= 0 {
		return fmt.Errorf("%w: copies must be positive, got %d", ErrInvalidArgument, copies)
	}

	book, found, err := s.repo.FindBook(ctx, title)
	if err != nil {
		return fmt.Errorf("find book %q: %w", title, err)
	}

	if !found {
		book = Book{Title: title}
	}
	if copies > MaxCopies-book.Copies {
		return fmt.Errorf("%w: %q would exceed %d copies", ErrInvalidArgument, title, MaxCopies)
	}
	book.Copies += copies

	if err := s.repo.SaveBook(ctx, &book); err != nil {
		return fmt.Errorf("save book %q: %w", title, err)
	}
	return nil
}

// BorrowBook lends one copy of title to a member. It returns false when the
// title is unknown or has no copies left.
func (s *Service) BorrowBook(ctx context.Context, memberID int64, title string) (bool, error) {
	valid, err := s.members.IsValidMember(ctx, memberID)
	if err != nil {
		return false, fmt.Errorf("validate member %d: %w", memberID, err)
	}
	if !valid {
		return false, fmt.Errorf("%w: member %d is not valid", ErrInvalidOperation, memberID)
	}

	book, found, err := s.repo.FindBook(ctx, title)
	if err != nil {
		return false, fmt.Errorf("find book %q: %w", title, err)
	}
	if !found || !book.Available() {
		return false, nil
	}

	book.Copies--
	if err := s.repo.SaveBook(ctx, &book); err != nil {
		return false, fmt.Errorf("save book %q: %w", title, err)
	}

	if err := s.notifier.NotifyBorrow(ctx, memberID, title); err != nil {
		return true, fmt.Errorf("notify borrow: %w", err)
	}
	return true, nil
}

// ReturnBook puts one copy of title back on the shelf. Membership is not
// checked, so a lapsed member can still bring a copy back.
func (s *Service) ReturnBook(ctx context.Context, memberID int64, title string) (bool, error) {
	book, found, err := s.repo.FindBook(ctx, title)
	if err != nil {
		return false, fmt.Errorf("find book %q: %w", title, err)
	}
	if !found {
		return false, nil
	}

	book.Copies++
	if err := s.repo.SaveBook(ctx, &book); err != nil {
		return false, fmt.Errorf("save book %q: %w", title, err)
	}

	if err := s.notifier.NotifyReturn(ctx, memberID, title); err != nil {
		return true, fmt.Errorf("notify return: %w", err)
	}
	return true, nil
}

// GetAvailableBooks returns the books with at least one copy, in repository order.
func (s *Service) GetAvailableBooks(ctx context.Context) ([]Book, error) {
	books, err := s.repo.GetAllBooks(ctx)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}

	out := make([]Book, 0, len(books))
	for _, b := range books {
		if b.Available() {
			out = append(out, b)
		}
	}
	return out, nil
}
