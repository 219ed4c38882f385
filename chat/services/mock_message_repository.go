package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/nuoidev/api/chat/models"
	"github.com/nuoidev/api/chat/repository"
)

// MockMessageRepository is a mock implementation of MessageRepository for testing
type MockMessageRepository struct {
	mock.Mock
}

// Ensure MockMessageRepository implements MessageRepository
var _ repository.MessageRepository = (*MockMessageRepository)(nil)

func (m *MockMessageRepository) Create(ctx context.Context, message *models.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockMessageRepository) FindRecent(ctx context.Context, limit int) ([]*models.Message, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Message), args.Error(1)
}

func (m *MockMessageRepository) Prune(ctx context.Context, keep int) (int64, error) {
	args := m.Called(ctx, keep)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMessageRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(ctx)
}
