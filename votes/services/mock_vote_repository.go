package services

import (
	"context"
	"time"

	uuid "github.com/gofrs/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/nuoidev/api/votes/models"
	voteRepository "github.com/nuoidev/api/votes/repository"
)

// MockVoteRepository is a mock implementation of VoteRepository for testing
type MockVoteRepository struct {
	mock.Mock
}

// Ensure MockVoteRepository implements VoteRepository
var _ voteRepository.VoteRepository = (*MockVoteRepository)(nil)

// Append mocks the Append method
func (m *MockVoteRepository) Append(ctx context.Context, vote *models.Vote) error {
	args := m.Called(ctx, vote)
	return args.Error(0)
}

// AppendUnique mocks the AppendUnique method
func (m *MockVoteRepository) AppendUnique(ctx context.Context, vote *models.Vote, dayStart time.Time) (bool, error) {
	args := m.Called(ctx, vote, dayStart)
	return args.Bool(0), args.Error(1)
}

// CountForProfile mocks the CountForProfile method
func (m *MockVoteRepository) CountForProfile(ctx context.Context, profileID uuid.UUID) (int64, error) {
	args := m.Called(ctx, profileID)
	return args.Get(0).(int64), args.Error(1)
}

// CountForVoterSince mocks the CountForVoterSince method
func (m *MockVoteRepository) CountForVoterSince(ctx context.Context, voterID string, dayStart time.Time) (int64, error) {
	args := m.Called(ctx, voterID, dayStart)
	return args.Get(0).(int64), args.Error(1)
}

// ExistsForVoterProfileSince mocks the ExistsForVoterProfileSince method
func (m *MockVoteRepository) ExistsForVoterProfileSince(ctx context.Context, voterID string, profileID uuid.UUID, dayStart time.Time) (bool, error) {
	args := m.Called(ctx, voterID, profileID, dayStart)
	return args.Bool(0), args.Error(1)
}

// WithTransaction mocks the WithTransaction method by running the function
// with the given context when no error is configured.
func (m *MockVoteRepository) WithTransaction(ctx context.Context, fn func(context.Context) error) error {
	args := m.Called(ctx, fn)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(ctx)
}
