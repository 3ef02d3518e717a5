package library

import (
	"errors"
	"math"
	"time"
)

// MaxCopies is the largest copy count a book can hold.
const MaxCopies = math.MaxInt32

var (
	// ErrInvalidArgument is returned when a request carries an empty title or a non-positive copy count.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidOperation is returned when a borrow is attempted by a member that is not valid.
	ErrInvalidOperation = errors.New("invalid operation")
	// ErrConflict is returned by SaveBook when the stored book changed after it was read.
	ErrConflict = errors.New("book was modified concurrently")
)

// Book represents a lendable title and how many copies of it are on the shelf.
type Book struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Copies    int       `json:"copies"`
	Version   int       `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Available reports whether at least one copy can be lent.
func (b Book) Available() bool {
	return b.Copies > 0
}
