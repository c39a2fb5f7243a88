package service

import (
	"context"

	"github.com/spec-kit/tour-service/internal/domain"
	"github.com/spec-kit/tour-service/internal/repository"
	apperrors "github.com/spec-kit/tour-service/pkg/util"
)

// UserService covers self-service profile operations and listings.
type UserService struct {
	users repository.UserRepository
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// List returns all active users.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return users, nil
}

// UpdateMe updates the caller's name and/or email. Password changes go
// through AuthService.UpdatePassword; the handler rejects password fields.
func (s *UserService) UpdateMe(ctx context.Context, user *domain.User, name, email *string) (*domain.User, error) {
	if name != nil && *name != "" {
		user.Name = *name
	}
	if email != nil && *email != "" {
		user.Email = *email
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// DeleteMe soft-deletes the caller: the row is kept, the account disappears
// from lookups and listings.
func (s *UserService) DeleteMe(ctx context.Context, user *domain.User) error {
	user.Active = false
	if err := s.users.Update(ctx, user); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}
