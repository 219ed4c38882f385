package repository

import (
	"context"

	uuid "github.com/gofrs/uuid"

	"github.com/nuoidev/api/profiles/models"
)

// ProfileFilter represents filtering criteria for querying profiles
type ProfileFilter struct {
	// SearchText matches name, nickname and catchphrase case-insensitively.
	SearchText *string
	// UserID restricts to profiles owned by the given account.
	UserID *uuid.UUID
}

// ProfileRepository defines the interface for profile-specific database operations
type ProfileRepository interface {
	// Create inserts a new profile
	Create(ctx context.Context, profile *models.Profile) error

	// FindByID retrieves a profile by its ID
	FindByID(ctx context.Context, profileID uuid.UUID) (*models.Profile, error)

	// FindByUserID retrieves the profile owned by the given user
	FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error)

	// Find retrieves profiles matching the filter criteria with pagination,
	// newest first
	Find(ctx context.Context, filter ProfileFilter, limit, offset int) ([]*models.Profile, error)

	// Count returns the number of profiles matching the filter criteria
	Count(ctx context.Context, filter ProfileFilter) (int64, error)

	// Update applies the non-nil fields of the request to the profile
	Update(ctx context.Context, profileID uuid.UUID, update *models.UpdateProfileRequest) error

	// UpdateVoteStats sets the denormalized vote count and rank tier. Only
	// those two columns and updated_at change.
	UpdateVoteStats(ctx context.Context, profileID uuid.UUID, votes int64, rank models.Rank) error

	// Top retrieves the highest-voted profiles, votes descending with newest
	// profiles breaking ties
	Top(ctx context.Context, limit int) ([]*models.Profile, error)

	// Delete removes a profile
	Delete(ctx context.Context, profileID uuid.UUID) error

	// WithTransaction executes a function within a database transaction
	WithTransaction(ctx context.Context, fn func(context.Context) error) error
}
