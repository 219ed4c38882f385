package services

import (
	"context"

	uuid "github.com/gofrs/uuid"
	"github.com/stretchr/testify/mock"

	profilemodels "github.com/nuoidev/api/profiles/models"
)

// MockProfileResolver is a mock implementation of ProfileResolver for testing
type MockProfileResolver struct {
	mock.Mock
}

// Ensure MockProfileResolver implements ProfileResolver
var _ ProfileResolver = (*MockProfileResolver)(nil)

// GetProfileByUser mocks the GetProfileByUser method
func (m *MockProfileResolver) GetProfileByUser(ctx context.Context, userID uuid.UUID) (*profilemodels.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*profilemodels.Profile), args.Error(1)
}
