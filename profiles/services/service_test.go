package services

import (
	"context"
	"testing"

	uuid "github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nuoidev/api/internal/cache"
	profileerrors "github.com/nuoidev/api/profiles/errors"
	"github.com/nuoidev/api/profiles/models"
	"github.com/nuoidev/api/profiles/repository"
)

func newLeaderboardCache(t *testing.T) *cache.GenericCacheService {
	t.Helper()
	cfg := cache.DefaultCacheConfig()
	cfg.Prefix = "test:"
	mem := cache.NewMemoryCache(cfg)
	t.Cleanup(func() { mem.Close() })
	return cache.NewGenericCacheService(mem, cfg)
}

func TestProfileService_CreateProfile(t *testing.T) {
	ctx := context.Background()
	userID := uuid.Must(uuid.NewV4())

	t.Run("Creates profile for user without one", func(t *testing.T) {
		mockRepo := new(MockProfileRepository)
		service := NewProfileService(mockRepo, nil)

		mockRepo.On("FindByUserID", mock.Anything, userID).Return(nil, profileerrors.ErrProfileNotFound)
		mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *models.Profile) bool {
			return p.Name == "Trùm Deadline" && p.UserID.Valid && p.UserID.UUID == userID &&
				p.Rank == models.RankBronze && p.Level == 1
		})).Return(nil)

		profile, err := service.CreateProfile(ctx, userID, CreateProfileInput{
			Name:     "Trùm Deadline",
			Nickname: "deadline",
			Skills:   []string{"Go", "PostgreSQL"},
		})

		require.NoError(t, err)
		assert.Equal(t, "Trùm Deadline", profile.Name)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Rejects second profile per user", func(t *testing.T) {
		mockRepo := new(MockProfileRepository)
		service := NewProfileService(mockRepo, nil)

		existing := &models.Profile{ID: uuid.Must(uuid.NewV4())}
		mockRepo.On("FindByUserID", mock.Anything, userID).Return(existing, nil)

		_, err := service.CreateProfile(ctx, userID, CreateProfileInput{Name: "Another"})
		assert.ErrorIs(t, err, profileerrors.ErrProfileAlreadyExists)
		mockRepo.AssertNotCalled(t, "Create")
	})
}

func TestProfileService_UpdateProfile_OwnershipEnforced(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.Must(uuid.NewV4())
	strangerID := uuid.Must(uuid.NewV4())
	profileID := uuid.Must(uuid.NewV4())

	profile := &models.Profile{
		ID:     profileID,
		UserID: uuid.NullUUID{UUID: ownerID, Valid: true},
		Name:   "Trùm Deadline",
	}

	mockRepo := new(MockProfileRepository)
	service := NewProfileService(mockRepo, nil)
	mockRepo.On("FindByID", mock.Anything, profileID).Return(profile, nil)

	newName := "Renamed"
	_, err := service.UpdateProfile(ctx, profileID, strangerID, &models.UpdateProfileRequest{Name: &newName})
	assert.ErrorIs(t, err, profileerrors.ErrPermissionDenied)
	mockRepo.AssertNotCalled(t, "Update")
}

func TestProfileService_ListProfiles_ClampsPagination(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProfileRepository)
	service := NewProfileService(mockRepo, nil)

	mockRepo.On("Find", mock.Anything, mock.Anything, MaxListLimit, 0).Return([]*models.Profile{}, nil)
	mockRepo.On("Count", mock.Anything, mock.Anything).Return(int64(0), nil)

	result, err := service.ListProfiles(ctx, models.ListQuery{Limit: 9999, Offset: -3})
	require.NoError(t, err)
	assert.Equal(t, MaxListLimit, result.Limit)
	assert.Equal(t, 0, result.Offset)
	mockRepo.AssertExpectations(t)
}

func TestProfileService_Leaderboard_CacheAside(t *testing.T) {
	ctx := context.Background()
	cacheService := newLeaderboardCache(t)

	top := []*models.Profile{
		{ID: uuid.Must(uuid.NewV4()), Name: "Trùm Deadline", Votes: 120, Rank: models.RankPlatinum},
		{ID: uuid.Must(uuid.NewV4()), Name: "Bug Slayer", Votes: 60, Rank: models.RankGold},
	}

	mockRepo := new(MockProfileRepository)
	service := NewProfileService(mockRepo, cacheService)

	// First read hits the repository and fills the cache.
	mockRepo.On("Top", mock.Anything, LeaderboardSize).Return(top, nil).Once()

	first, err := service.Leaderboard(ctx)
	require.NoError(t, err)
	assert.Len(t, first, 2)

	// Second read is served from cache; no further Top expectation is set.
	second, err := service.Leaderboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, first[0].Name, second[0].Name)
	mockRepo.AssertExpectations(t)
}

func TestProfileService_UpdateVoteStats_DerivesRankAndInvalidates(t *testing.T) {
	ctx := context.Background()
	cacheService := newLeaderboardCache(t)
	profileID := uuid.Must(uuid.NewV4())

	mockRepo := new(MockProfileRepository)
	service := NewProfileService(mockRepo, cacheService)

	// Seed the cached leaderboard.
	mockRepo.On("Top", mock.Anything, LeaderboardSize).Return([]*models.Profile{}, nil).Once()
	_, err := service.Leaderboard(ctx)
	require.NoError(t, err)

	mockRepo.On("UpdateVoteStats", mock.Anything, profileID, int64(505), models.RankMaster).Return(nil)

	require.NoError(t, service.UpdateVoteStats(ctx, profileID, 505))

	// The cached leaderboard is gone; the next read hits the repository again.
	mockRepo.On("Top", mock.Anything, LeaderboardSize).Return([]*models.Profile{}, nil).Once()
	_, err = service.Leaderboard(ctx)
	require.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestProfileService_ListProfiles_SearchFilterPassedThrough(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProfileRepository)
	service := NewProfileService(mockRepo, nil)

	mockRepo.On("Find", mock.Anything, mock.MatchedBy(func(f repository.ProfileFilter) bool {
		return f.SearchText != nil && *f.SearchText == "deadline"
	}), DefaultListLimit, 0).Return([]*models.Profile{}, nil)
	mockRepo.On("Count", mock.Anything, mock.Anything).Return(int64(0), nil)

	_, err := service.ListProfiles(ctx, models.ListQuery{Search: "deadline"})
	require.NoError(t, err)
	mockRepo.AssertExpectations(t)
}
