package repository

import (
	"context"
	"time"

	uuid "github.com/gofrs/uuid"

	"github.com/nuoidev/api/votes/models"
)

// VoteRepository defines the interface for vote ledger database operations.
// The ledger is append-only: no update or delete operations exist.
type VoteRepository interface {
	// Append inserts a ledger row unconditionally.
	Append(ctx context.Context, vote *models.Vote) error

	// AppendUnique inserts a ledger row only when the voter has no row for
	// the same profile since dayStart, in a single atomic statement. Returns
	// whether the row was created. This closes the check-then-append race:
	// of two concurrent duplicates exactly one observes created=true.
	AppendUnique(ctx context.Context, vote *models.Vote, dayStart time.Time) (bool, error)

	// CountForProfile returns the all-time ledger count for a profile.
	CountForProfile(ctx context.Context, profileID uuid.UUID) (int64, error)

	// CountForVoterSince returns the voter's ledger count since dayStart.
	CountForVoterSince(ctx context.Context, voterID string, dayStart time.Time) (int64, error)

	// ExistsForVoterProfileSince reports whether the voter already has a row
	// for the profile since dayStart.
	ExistsForVoterProfileSince(ctx context.Context, voterID string, profileID uuid.UUID, dayStart time.Time) (bool, error)

	// WithTransaction executes a function within a database transaction.
	WithTransaction(ctx context.Context, fn func(context.Context) error) error
}
