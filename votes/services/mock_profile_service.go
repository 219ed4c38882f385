package services

import (
	"context"

	uuid "github.com/gofrs/uuid"
	"github.com/stretchr/testify/mock"

	profilemodels "github.com/nuoidev/api/profiles/models"
	profileservices "github.com/nuoidev/api/profiles/services"
)

// MockProfileService is a mock implementation of the profile service used by
// the vote service for existence checks and stat resyncs.
type MockProfileService struct {
	mock.Mock
}

// Ensure MockProfileService implements ProfileService
var _ profileservices.ProfileService = (*MockProfileService)(nil)

func (m *MockProfileService) CreateProfile(ctx context.Context, userID uuid.UUID, input profileservices.CreateProfileInput) (*profilemodels.Profile, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*profilemodels.Profile), args.Error(1)
}

func (m *MockProfileService) GetProfile(ctx context.Context, profileID uuid.UUID) (*profilemodels.Profile, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*profilemodels.Profile), args.Error(1)
}

func (m *MockProfileService) GetProfileByUser(ctx context.Context, userID uuid.UUID) (*profilemodels.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*profilemodels.Profile), args.Error(1)
}

func (m *MockProfileService) ListProfiles(ctx context.Context, query profilemodels.ListQuery) (*profileservices.ProfileList, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*profileservices.ProfileList), args.Error(1)
}

func (m *MockProfileService) UpdateProfile(ctx context.Context, profileID, userID uuid.UUID, update *profilemodels.UpdateProfileRequest) (*profilemodels.Profile, error) {
	args := m.Called(ctx, profileID, userID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*profilemodels.Profile), args.Error(1)
}

func (m *MockProfileService) DeleteProfile(ctx context.Context, profileID, userID uuid.UUID) error {
	args := m.Called(ctx, profileID, userID)
	return args.Error(0)
}

func (m *MockProfileService) Leaderboard(ctx context.Context) ([]*profilemodels.Profile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*profilemodels.Profile), args.Error(1)
}

func (m *MockProfileService) UpdateVoteStats(ctx context.Context, profileID uuid.UUID, votes int64) error {
	args := m.Called(ctx, profileID, votes)
	return args.Error(0)
}
