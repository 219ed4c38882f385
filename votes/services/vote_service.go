package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	uuid "github.com/gofrs/uuid"

	platformconfig "github.com/nuoidev/api/internal/platform/config"
	"github.com/nuoidev/api/internal/types"
	profileerrors "github.com/nuoidev/api/profiles/errors"
	profilemodels "github.com/nuoidev/api/profiles/models"
	profileservices "github.com/nuoidev/api/profiles/services"
	voteerrors "github.com/nuoidev/api/votes/errors"
	"github.com/nuoidev/api/votes/models"
	"github.com/nuoidev/api/votes/repository"
)

// VoteResult is the outcome of an accepted vote.
type VoteResult struct {
	Profile        *profilemodels.Profile `json:"profile"`
	RemainingVotes int                    `json:"remainingVotes"`
}

// QuotaStatus reports a voter's standing against the daily cap.
type QuotaStatus struct {
	RemainingVotes int   `json:"remainingVotes"`
	TodayCount     int64 `json:"todayCount"`
	DailyCap       int   `json:"dailyCap"`
}

// VoteService defines the business operations of the votes module.
type VoteService interface {
	// CastVote appends a ledger row for the voter after quota checks and
	// resyncs the profile's denormalized vote stats.
	CastVote(ctx context.Context, voter types.Voter, profileID uuid.UUID) (*VoteResult, error)

	// RemainingVotes reports the voter's quota standing for the current day.
	RemainingVotes(ctx context.Context, voter types.Voter) (*QuotaStatus, error)

	// Resync recomputes a profile's vote total from the ledger and stores it
	// with the derived rank. Idempotent.
	Resync(ctx context.Context, profileID uuid.UUID) (*profilemodels.Profile, error)
}

type voteService struct {
	voteRepo       repository.VoteRepository
	profileService profileservices.ProfileService
	config         platformconfig.VotesConfig

	// now is injectable so tests control the day boundary.
	now func() time.Time
}

// NewVoteService creates a vote service with its dependencies injected.
func NewVoteService(voteRepo repository.VoteRepository, profileService profileservices.ProfileService, config platformconfig.VotesConfig) VoteService {
	if config.DailyCap <= 0 {
		config.DailyCap = 10
	}
	return &voteService{
		voteRepo:       voteRepo,
		profileService: profileService,
		config:         config,
		now:            time.Now,
	}
}

// dayStartUTC returns midnight UTC of the day containing t. All quota windows
// are UTC calendar days.
func dayStartUTC(t time.Time) time.Time {
	return t.UTC().Truncate(24 * time.Hour)
}

// CastVote runs the ordered quota checks and appends to the ledger. The whole
// operation, checks included, runs in one transaction; the final AppendUnique
// is the atomic arbiter when two duplicates race past the read checks.
func (s *voteService) CastVote(ctx context.Context, voter types.Voter, profileID uuid.UUID) (*VoteResult, error) {
	if !voter.Valid() {
		return nil, fmt.Errorf("invalid voter identity")
	}

	var result *VoteResult

	err := s.voteRepo.WithTransaction(ctx, func(txCtx context.Context) error {
		profile, err := s.profileService.GetProfile(txCtx, profileID)
		if err != nil {
			if errors.Is(err, profileerrors.ErrProfileNotFound) {
				return voteerrors.ErrProfileNotFound
			}
			return err
		}

		// Self-vote applies only to authenticated voters; anonymous tokens
		// own no profile.
		if s.config.SelfVoteCheck && voter.IsUser() && profile.UserID.Valid && profile.UserID.UUID == voter.UserID {
			return voteerrors.ErrSelfVote
		}

		dayStart := dayStartUTC(s.now())

		count, err := s.voteRepo.CountForVoterSince(txCtx, voter.Key(), dayStart)
		if err != nil {
			return err
		}
		if count >= int64(s.config.DailyCap) {
			return voteerrors.NewQuotaError(voteerrors.ErrDailyQuotaExceeded, 0)
		}

		remaining := s.config.DailyCap - int(count)

		exists, err := s.voteRepo.ExistsForVoterProfileSince(txCtx, voter.Key(), profileID, dayStart)
		if err != nil {
			return err
		}
		if exists {
			return voteerrors.NewQuotaError(voteerrors.ErrAlreadyVotedToday, remaining)
		}

		voteID, err := uuid.NewV4()
		if err != nil {
			return fmt.Errorf("failed to generate vote id: %w", err)
		}
		vote := &models.Vote{
			ID:        voteID,
			ProfileID: profileID,
			VoterID:   voter.Key(),
			CreatedAt: s.now().UTC(),
		}

		created, err := s.voteRepo.AppendUnique(txCtx, vote, dayStart)
		if err != nil {
			return err
		}
		if !created {
			// A concurrent request won the append; this one is the duplicate.
			return voteerrors.NewQuotaError(voteerrors.ErrAlreadyVotedToday, remaining)
		}

		updated, err := s.resync(txCtx, profileID)
		if err != nil {
			return err
		}

		result = &VoteResult{
			Profile:        updated,
			RemainingVotes: remaining - 1,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// RemainingVotes reports the voter's quota standing for the current day.
func (s *voteService) RemainingVotes(ctx context.Context, voter types.Voter) (*QuotaStatus, error) {
	if !voter.Valid() {
		return nil, fmt.Errorf("invalid voter identity")
	}

	count, err := s.voteRepo.CountForVoterSince(ctx, voter.Key(), dayStartUTC(s.now()))
	if err != nil {
		return nil, err
	}

	remaining := s.config.DailyCap - int(count)
	if remaining < 0 {
		remaining = 0
	}

	return &QuotaStatus{
		RemainingVotes: remaining,
		TodayCount:     count,
		DailyCap:       s.config.DailyCap,
	}, nil
}

// Resync recomputes the profile's vote total from the ledger.
func (s *voteService) Resync(ctx context.Context, profileID uuid.UUID) (*profilemodels.Profile, error) {
	profile, err := s.resync(ctx, profileID)
	if err != nil {
		if errors.Is(err, profileerrors.ErrProfileNotFound) {
			return nil, voteerrors.ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

// resync counts the ledger, stores the total with its derived rank and
// returns the refreshed profile.
func (s *voteService) resync(ctx context.Context, profileID uuid.UUID) (*profilemodels.Profile, error) {
	count, err := s.voteRepo.CountForProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}

	if err := s.profileService.UpdateVoteStats(ctx, profileID, count); err != nil {
		return nil, err
	}

	return s.profileService.GetProfile(ctx, profileID)
}
