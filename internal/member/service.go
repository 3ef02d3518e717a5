package member

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register creates an active member.
func (s *Service) Register(ctx context.Context, name, email string) (Member, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" {
		return Member{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if err := validate.Var(email, "required,email"); err != nil {
		return Member{}, fmt.Errorf("%w: invalid email", ErrInvalidInput)
	}

	m := &Member{Name: name, Email: email, Status: StatusActive}
	if err := s.repo.Create(ctx, m); err != nil {
		return Member{}, err
	}
	return *m, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (Member, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Suspend(ctx context.Context, id int64) error {
	return s.repo.SetStatus(ctx, id, StatusSuspended)
}

func (s *Service) Reinstate(ctx context.Context, id int64) error {
	return s.repo.SetStatus(ctx, id, StatusActive)
}

// IsValidMember reports whether id belongs to an active member. Unknown ids are not valid.
func (s *Service) IsValidMember(ctx context.Context, id int64) (bool, error) {
	if id <= 0 {
		return false, nil
	}
	return s.repo.IsActive(ctx, id)
}
