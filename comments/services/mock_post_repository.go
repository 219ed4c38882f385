package services

import (
	"context"

	uuid "github.com/gofrs/uuid"
	"github.com/stretchr/testify/mock"

	postmodels "github.com/nuoidev/api/posts/models"
	postrepository "github.com/nuoidev/api/posts/repository"
)

// MockPostRepository is a mock implementation of the post repository used by
// the comment service for existence checks and counter refreshes.
type MockPostRepository struct {
	mock.Mock
}

// Ensure MockPostRepository implements PostRepository
var _ postrepository.PostRepository = (*MockPostRepository)(nil)

func (m *MockPostRepository) Create(ctx context.Context, post *postmodels.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) FindByID(ctx context.Context, postID uuid.UUID) (*postmodels.Post, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*postmodels.Post), args.Error(1)
}

func (m *MockPostRepository) Find(ctx context.Context, limit, offset int) ([]*postmodels.Post, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*postmodels.Post), args.Error(1)
}

func (m *MockPostRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPostRepository) IncrementLikes(ctx context.Context, postID uuid.UUID) (int64, error) {
	args := m.Called(ctx, postID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPostRepository) SetPinned(ctx context.Context, postID uuid.UUID, pinned bool) error {
	args := m.Called(ctx, postID, pinned)
	return args.Error(0)
}

func (m *MockPostRepository) SetCommentCount(ctx context.Context, postID uuid.UUID, count int64) error {
	args := m.Called(ctx, postID, count)
	return args.Error(0)
}

func (m *MockPostRepository) Delete(ctx context.Context, postID uuid.UUID) error {
	args := m.Called(ctx, postID)
	return args.Error(0)
}

func (m *MockPostRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(ctx)
}
