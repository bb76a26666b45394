package service

import (
	"context"
	"time"

	"github.com/RodrigoMBrauna/SistemaDeEstoque/internal/model"
	"github.com/RodrigoMBrauna/SistemaDeEstoque/internal/repository"
)

// UserService exposes staff record operations.
type UserService interface {
	ListUsers(ctx context.Context, query string) ([]model.User, error)
	CreateUser(ctx context.Context, user model.User) (model.User, error)
	UpdateUser(ctx context.Context, user model.User) (model.User, error)
	DeleteUser(ctx context.Context, id string) error
}

type userService struct {
	repo repository.UserRepository
	now  func() time.Time
}

// NewUserService builds a UserService over repo.
func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo, now: time.Now}
}

func (s *userService) ListUsers(ctx context.Context, query string) ([]model.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if query == "" {
		return users, nil
	}
	return FilterUsers(users, query), nil
}

func (s *userService) CreateUser(ctx context.Context, user model.User) (model.User, error) {
	if user.Status == "" {
		user.Status = model.UserStatusActive
	}
	if user.CreatedAt == "" {
		user.CreatedAt = s.now().Format(model.DateLayout)
	}
	return s.repo.Create(ctx, user)
}

// UpdateUser replaces a user record. createdAt always keeps its stored value
// and an omitted status keeps the current one.
func (s *userService) UpdateUser(ctx context.Context, user model.User) (model.User, error) {
	existing, err := s.repo.Get(ctx, user.ID)
	if err != nil {
		return model.User{}, err
	}
	user.CreatedAt = existing.CreatedAt
	if user.Status == "" {
		user.Status = existing.Status
	}
	return s.repo.Update(ctx, user)
}

func (s *userService) DeleteUser(ctx context.Context, id string) error {
	return s.repo.Remove(ctx, id)
}
