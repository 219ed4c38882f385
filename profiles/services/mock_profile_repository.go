package services

import (
	"context"

	uuid "github.com/gofrs/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/nuoidev/api/profiles/models"
	profileRepository "github.com/nuoidev/api/profiles/repository"
)

// MockProfileRepository is a mock implementation of ProfileRepository for testing
type MockProfileRepository struct {
	mock.Mock
}

// Ensure MockProfileRepository implements ProfileRepository
var _ profileRepository.ProfileRepository = (*MockProfileRepository)(nil)

// Create mocks the Create method
func (m *MockProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

// FindByID mocks the FindByID method
func (m *MockProfileRepository) FindByID(ctx context.Context, profileID uuid.UUID) (*models.Profile, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

// FindByUserID mocks the FindByUserID method
func (m *MockProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

// Find mocks the Find method
func (m *MockProfileRepository) Find(ctx context.Context, filter profileRepository.ProfileFilter, limit, offset int) ([]*models.Profile, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Profile), args.Error(1)
}

// Count mocks the Count method
func (m *MockProfileRepository) Count(ctx context.Context, filter profileRepository.ProfileFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// Update mocks the Update method
func (m *MockProfileRepository) Update(ctx context.Context, profileID uuid.UUID, update *models.UpdateProfileRequest) error {
	args := m.Called(ctx, profileID, update)
	return args.Error(0)
}

// UpdateVoteStats mocks the UpdateVoteStats method
func (m *MockProfileRepository) UpdateVoteStats(ctx context.Context, profileID uuid.UUID, votes int64, rank models.Rank) error {
	args := m.Called(ctx, profileID, votes, rank)
	return args.Error(0)
}

// Top mocks the Top method
func (m *MockProfileRepository) Top(ctx context.Context, limit int) ([]*models.Profile, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Profile), args.Error(1)
}

// Delete mocks the Delete method
func (m *MockProfileRepository) Delete(ctx context.Context, profileID uuid.UUID) error {
	args := m.Called(ctx, profileID)
	return args.Error(0)
}

// WithTransaction mocks the WithTransaction method
func (m *MockProfileRepository) WithTransaction(ctx context.Context, fn func(context.Context) error) error {
	args := m.Called(ctx, fn)
	return args.Error(0)
}
