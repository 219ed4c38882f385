package repository

import (
	"context"
	"fmt"
	"time"

	uuid "github.com/gofrs/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/nuoidev/api/internal/database/postgres"
	"github.com/nuoidev/api/votes/models"
)

// postgresVoteRepository implements VoteRepository using raw SQL queries
type postgresVoteRepository struct {
	client *postgres.Client
}

// NewPostgresVoteRepository creates a new PostgreSQL repository for the vote ledger
func NewPostgresVoteRepository(client *postgres.Client) VoteRepository {
	return &postgresVoteRepository{
		client: client,
	}
}

// getExecutor returns either the transaction from context or the DB connection
func (r *postgresVoteRepository) getExecutor(ctx context.Context) sqlx.ExtContext {
	if txVal := ctx.Value("tx"); txVal != nil {
		if tx, ok := txVal.(*sqlx.Tx); ok {
			return tx
		}
	}
	return r.client.DB()
}

// Append inserts a ledger row unconditionally
func (r *postgresVoteRepository) Append(ctx context.Context, vote *models.Vote) error {
	if vote.CreatedAt.IsZero() {
		vote.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO votes (id, profile_id, voter_id, created_at)
		VALUES (:id, :profile_id, :voter_id, :created_at)`

	if _, err := sqlx.NamedExecContext(ctx, r.getExecutor(ctx), query, vote); err != nil {
		return fmt.Errorf("failed to append vote: %w", err)
	}

	return nil
}

// AppendUnique inserts a ledger row guarded by a NOT EXISTS check on the same
// voter, profile and day window, in one statement. Concurrent duplicates race
// inside the database; only the winner's INSERT ... SELECT produces a row.
func (r *postgresVoteRepository) AppendUnique(ctx context.Context, vote *models.Vote, dayStart time.Time) (bool, error) {
	if vote.CreatedAt.IsZero() {
		vote.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO votes (id, profile_id, voter_id, created_at)
		SELECT $1, $2, $3, $4
		WHERE NOT EXISTS (
			SELECT 1 FROM votes
			WHERE voter_id = $3 AND profile_id = $2 AND created_at >= $5
		)`

	result, err := r.getExecutor(ctx).ExecContext(ctx, query,
		vote.ID, vote.ProfileID, vote.VoterID, vote.CreatedAt, dayStart)
	if err != nil {
		return false, fmt.Errorf("failed to append vote: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read append result: %w", err)
	}

	return rows > 0, nil
}

// CountForProfile returns the all-time ledger count for a profile
func (r *postgresVoteRepository) CountForProfile(ctx context.Context, profileID uuid.UUID) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM votes WHERE profile_id = $1`

	if err := sqlx.GetContext(ctx, r.getExecutor(ctx), &count, query, profileID); err != nil {
		return 0, fmt.Errorf("failed to count votes for profile: %w", err)
	}

	return count, nil
}

// CountForVoterSince returns the voter's ledger count since dayStart
func (r *postgresVoteRepository) CountForVoterSince(ctx context.Context, voterID string, dayStart time.Time) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM votes WHERE voter_id = $1 AND created_at >= $2`

	if err := sqlx.GetContext(ctx, r.getExecutor(ctx), &count, query, voterID, dayStart); err != nil {
		return 0, fmt.Errorf("failed to count votes for voter: %w", err)
	}

	return count, nil
}

// ExistsForVoterProfileSince reports whether the voter already has a row for
// the profile since dayStart
func (r *postgresVoteRepository) ExistsForVoterProfileSince(ctx context.Context, voterID string, profileID uuid.UUID, dayStart time.Time) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (
		SELECT 1 FROM votes
		WHERE voter_id = $1 AND profile_id = $2 AND created_at >= $3
	)`

	if err := sqlx.GetContext(ctx, r.getExecutor(ctx), &exists, query, voterID, profileID, dayStart); err != nil {
		return false, fmt.Errorf("failed to check existing vote: %w", err)
	}

	return exists, nil
}

// WithTransaction executes a function within a database transaction
func (r *postgresVoteRepository) WithTransaction(ctx context.Context, fn func(context.Context) error) error {
	tx, err := r.client.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	txCtx := context.WithValue(ctx, "tx", tx)

	if err := fn(txCtx); err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			return fmt.Errorf("transaction failed and rollback failed: %w (original error: %v)", rollbackErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
