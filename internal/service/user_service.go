package service

import (
	"context"

	"github.com/mockdesk/mockdesk-backend/internal/model"
)

// UserService handles instructor account lookups and creation.
type UserService struct {
	users UserStore
}

// NewUserService creates a new UserService.
func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

// Create inserts a new user.
func (s *UserService) Create(ctx context.Context, u *model.User) error {
	return s.users.Create(ctx, u)
}

// GetByEmail retrieves a user by email.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.users.GetByEmail(ctx, email)
}

// GetByID retrieves a user by id.
func (s *UserService) GetByID(ctx context.Context, id int) (*model.User, error) {
	return s.users.GetByID(ctx, id)
}
