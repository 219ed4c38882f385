package services

import (
	"context"
	"fmt"

	uuid "github.com/gofrs/uuid"
	"github.com/lib/pq"

	"github.com/nuoidev/api/internal/cache"
	"github.com/nuoidev/api/internal/pkg/log"
	profileerrors "github.com/nuoidev/api/profiles/errors"
	"github.com/nuoidev/api/profiles/models"
	"github.com/nuoidev/api/profiles/repository"
)

const (
	// LeaderboardSize is the number of profiles on the leaderboard.
	LeaderboardSize = 50

	// leaderboardCacheKey stores the cached leaderboard payload.
	leaderboardCacheKey = "profiles:leaderboard"

	// DefaultListLimit and MaxListLimit bound profile listing pagination.
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// CreateProfileInput carries the fields for a new profile.
type CreateProfileInput struct {
	Name        string
	Nickname    string
	Avatar      string
	Bio         string
	Skills      []string
	FunFacts    []string
	Catchphrase string
	Mood        string
}

// ProfileList is a paginated listing result.
type ProfileList struct {
	Profiles []*models.Profile `json:"profiles"`
	Total    int64             `json:"total"`
	Limit    int               `json:"limit"`
	Offset   int               `json:"offset"`
}

// ProfileService defines the business operations of the profiles module.
type ProfileService interface {
	CreateProfile(ctx context.Context, userID uuid.UUID, input CreateProfileInput) (*models.Profile, error)
	GetProfile(ctx context.Context, profileID uuid.UUID) (*models.Profile, error)
	GetProfileByUser(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	ListProfiles(ctx context.Context, query models.ListQuery) (*ProfileList, error)
	UpdateProfile(ctx context.Context, profileID, userID uuid.UUID, update *models.UpdateProfileRequest) (*models.Profile, error)
	DeleteProfile(ctx context.Context, profileID, userID uuid.UUID) error
	Leaderboard(ctx context.Context) ([]*models.Profile, error)

	// UpdateVoteStats persists a recomputed vote total, derives the rank tier
	// and invalidates the cached leaderboard. The vote aggregator calls it.
	UpdateVoteStats(ctx context.Context, profileID uuid.UUID, votes int64) error
}

type profileService struct {
	profileRepo  repository.ProfileRepository
	cacheService *cache.GenericCacheService
}

// NewProfileService creates a profile service with its dependencies injected.
// cacheService may be nil; the leaderboard then always hits the database.
func NewProfileService(profileRepo repository.ProfileRepository, cacheService *cache.GenericCacheService) ProfileService {
	return &profileService{
		profileRepo:  profileRepo,
		cacheService: cacheService,
	}
}

// CreateProfile creates the user's profile. Each account owns at most one.
func (s *profileService) CreateProfile(ctx context.Context, userID uuid.UUID, input CreateProfileInput) (*models.Profile, error) {
	if _, err := s.profileRepo.FindByUserID(ctx, userID); err == nil {
		return nil, profileerrors.ErrProfileAlreadyExists
	}

	profileID, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("failed to generate profile id: %w", err)
	}

	profile := &models.Profile{
		ID:          profileID,
		UserID:      uuid.NullUUID{UUID: userID, Valid: true},
		Name:        input.Name,
		Nickname:    input.Nickname,
		Avatar:      input.Avatar,
		Bio:         input.Bio,
		Skills:      pq.StringArray(input.Skills),
		FunFacts:    pq.StringArray(input.FunFacts),
		Catchphrase: input.Catchphrase,
		Mood:        input.Mood,
		Level:       1,
		Rank:        models.RankBronze,
	}

	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, err
	}

	return profile, nil
}

// GetProfile retrieves a profile by ID
func (s *profileService) GetProfile(ctx context.Context, profileID uuid.UUID) (*models.Profile, error) {
	return s.profileRepo.FindByID(ctx, profileID)
}

// GetProfileByUser retrieves the profile owned by the given account
func (s *profileService) GetProfileByUser(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	return s.profileRepo.FindByUserID(ctx, userID)
}

// ListProfiles retrieves profiles with search and pagination
func (s *profileService) ListProfiles(ctx context.Context, query models.ListQuery) (*ProfileList, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	offset := query.Offset
	if offset < 0 {
		offset = 0
	}

	filter := repository.ProfileFilter{}
	if query.Search != "" {
		filter.SearchText = &query.Search
	}

	profiles, err := s.profileRepo.Find(ctx, filter, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := s.profileRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &ProfileList{
		Profiles: profiles,
		Total:    total,
		Limit:    limit,
		Offset:   offset,
	}, nil
}

// UpdateProfile applies an update after verifying ownership
func (s *profileService) UpdateProfile(ctx context.Context, profileID, userID uuid.UUID, update *models.UpdateProfileRequest) (*models.Profile, error) {
	profile, err := s.profileRepo.FindByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if !profile.UserID.Valid || profile.UserID.UUID != userID {
		return nil, profileerrors.ErrPermissionDenied
	}

	if err := s.profileRepo.Update(ctx, profileID, update); err != nil {
		return nil, err
	}

	return s.profileRepo.FindByID(ctx, profileID)
}

// DeleteProfile removes a profile after verifying ownership
func (s *profileService) DeleteProfile(ctx context.Context, profileID, userID uuid.UUID) error {
	profile, err := s.profileRepo.FindByID(ctx, profileID)
	if err != nil {
		return err
	}
	if !profile.UserID.Valid || profile.UserID.UUID != userID {
		return profileerrors.ErrPermissionDenied
	}

	if err := s.profileRepo.Delete(ctx, profileID); err != nil {
		return err
	}

	s.invalidateLeaderboard(ctx)
	return nil
}

// Leaderboard returns the top profiles by votes, cache-aside.
func (s *profileService) Leaderboard(ctx context.Context) ([]*models.Profile, error) {
	if s.cacheEnabled() {
		var cached []*models.Profile
		if err := s.cacheService.GetCached(ctx, leaderboardCacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	profiles, err := s.profileRepo.Top(ctx, LeaderboardSize)
	if err != nil {
		return nil, err
	}

	if s.cacheEnabled() {
		if err := s.cacheService.CacheData(ctx, leaderboardCacheKey, profiles); err != nil {
			log.Warn("Failed to cache leaderboard: %v", err)
		}
	}

	return profiles, nil
}

// UpdateVoteStats persists the recomputed total, derives the tier and drops
// the cached leaderboard so the next read sees the new order.
func (s *profileService) UpdateVoteStats(ctx context.Context, profileID uuid.UUID, votes int64) error {
	rank := models.RankFor(votes)
	if err := s.profileRepo.UpdateVoteStats(ctx, profileID, votes, rank); err != nil {
		return err
	}

	s.invalidateLeaderboard(ctx)
	return nil
}

func (s *profileService) cacheEnabled() bool {
	return s.cacheService != nil && s.cacheService.IsEnabled()
}

func (s *profileService) invalidateLeaderboard(ctx context.Context) {
	if !s.cacheEnabled() {
		return
	}
	if err := s.cacheService.InvalidateKey(ctx, leaderboardCacheKey); err != nil && err != cache.ErrKeyNotFound {
		log.Warn("Failed to invalidate leaderboard cache: %v", err)
	}
}
