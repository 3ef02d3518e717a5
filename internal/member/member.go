package member

import (
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when a member is not found.
	ErrNotFound = errors.New("member not found")
	// ErrInvalidInput is returned when registration data is incomplete or malformed.
	ErrInvalidInput = errors.New("invalid member input")
	// ErrAlreadyExists is returned when the email is taken.
	ErrAlreadyExists = errors.New("member already exists")
)

type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusSuspended Status = "SUSPENDED"
)

// Member is a library card holder.
type Member struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
