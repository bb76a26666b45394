package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/RodrigoMBrauna/SistemaDeEstoque/internal/model"
)

// MockProductRepository is a mock implementation of ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) List(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductRepository) Get(ctx context.Context, id string) (model.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Product), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, draft model.Product) (model.Product, error) {
	args := m.Called(ctx, draft)
	return args.Get(0).(model.Product), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, entity model.Product) (model.Product, error) {
	args := m.Called(ctx, entity)
	return args.Get(0).(model.Product), args.Error(1)
}

func (m *MockProductRepository) Put(ctx context.Context, entity model.Product) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

func (m *MockProductRepository) Remove(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) Get(ctx context.Context, id string) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, draft model.User) (model.User, error) {
	args := m.Called(ctx, draft)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, entity model.User) (model.User, error) {
	args := m.Called(ctx, entity)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserRepository) Put(ctx context.Context, entity model.User) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

func (m *MockUserRepository) Remove(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
