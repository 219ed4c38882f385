package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	uuid "github.com/gofrs/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/nuoidev/api/internal/database/postgres"
	profileerrors "github.com/nuoidev/api/profiles/errors"
	"github.com/nuoidev/api/profiles/models"
)

const profileColumns = `id, user_id, name, nickname, avatar, bio, skills, fun_facts,
	catchphrase, mood, level, xp, votes, rank, created_at, updated_at`

// postgresProfileRepository implements ProfileRepository using raw SQL queries
type postgresProfileRepository struct {
	client *postgres.Client
}

// NewPostgresProfileRepository creates a new PostgreSQL repository for profiles
func NewPostgresProfileRepository(client *postgres.Client) ProfileRepository {
	return &postgresProfileRepository{
		client: client,
	}
}

// getExecutor returns either the transaction from context or the DB connection
func (r *postgresProfileRepository) getExecutor(ctx context.Context) sqlx.ExtContext {
	if txVal := ctx.Value("tx"); txVal != nil {
		if tx, ok := txVal.(*sqlx.Tx); ok {
			return tx
		}
	}
	return r.client.DB()
}

// Create inserts a new profile
func (r *postgresProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	now := time.Now().UTC()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now
	if profile.Rank == "" {
		profile.Rank = models.RankFor(profile.Votes)
	}
	if profile.Skills == nil {
		profile.Skills = pq.StringArray{}
	}
	if profile.FunFacts == nil {
		profile.FunFacts = pq.StringArray{}
	}

	query := `
		INSERT INTO profiles (
			id, user_id, name, nickname, avatar, bio, skills, fun_facts,
			catchphrase, mood, level, xp, votes, rank, created_at, updated_at
		) VALUES (
			:id, :user_id, :name, :nickname, :avatar, :bio, :skills, :fun_facts,
			:catchphrase, :mood, :level, :xp, :votes, :rank, :created_at, :updated_at
		)`

	_, err := sqlx.NamedExecContext(ctx, r.getExecutor(ctx), query, profile)
	if err != nil {
		if strings.Contains(err.Error(), "unique constraint") || strings.Contains(err.Error(), "duplicate key") {
			return profileerrors.ErrProfileAlreadyExists
		}
		return fmt.Errorf("failed to create profile: %w", err)
	}

	return nil
}

// FindByID retrieves a profile by its ID
func (r *postgresProfileRepository) FindByID(ctx context.Context, profileID uuid.UUID) (*models.Profile, error) {
	query := fmt.Sprintf(`SELECT %s FROM profiles WHERE id = $1`, profileColumns)

	var profile models.Profile
	err := sqlx.GetContext(ctx, r.getExecutor(ctx), &profile, query, profileID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, profileerrors.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to find profile by ID: %w", err)
	}

	return &profile, nil
}

// FindByUserID retrieves the profile owned by the given user
func (r *postgresProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	query := fmt.Sprintf(`SELECT %s FROM profiles WHERE user_id = $1`, profileColumns)

	var profile models.Profile
	err := sqlx.GetContext(ctx, r.getExecutor(ctx), &profile, query, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, profileerrors.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to find profile by user ID: %w", err)
	}

	return &profile, nil
}

// buildFilterClauses translates a ProfileFilter to WHERE clauses and args.
func buildFilterClauses(filter ProfileFilter) ([]string, []interface{}) {
	var clauses []string
	var args []interface{}

	if filter.SearchText != nil && *filter.SearchText != "" {
		args = append(args, "%"+strings.ToLower(*filter.SearchText)+"%")
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf(
			"(LOWER(name) LIKE %s OR LOWER(nickname) LIKE %s OR LOWER(catchphrase) LIKE %s)",
			placeholder, placeholder, placeholder))
	}
	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		clauses = append(clauses, fmt.Sprintf("user_id = $%d", len(args)))
	}

	return clauses, args
}

// Find retrieves profiles matching the filter criteria with pagination
func (r *postgresProfileRepository) Find(ctx context.Context, filter ProfileFilter, limit, offset int) ([]*models.Profile, error) {
	clauses, args := buildFilterClauses(filter)

	query := fmt.Sprintf(`SELECT %s FROM profiles`, profileColumns)
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args))
	args = append(args, offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	profiles := []*models.Profile{}
	if err := sqlx.SelectContext(ctx, r.getExecutor(ctx), &profiles, query, args...); err != nil {
		return nil, fmt.Errorf("failed to find profiles: %w", err)
	}

	return profiles, nil
}

// Count returns the number of profiles matching the filter criteria
func (r *postgresProfileRepository) Count(ctx context.Context, filter ProfileFilter) (int64, error) {
	clauses, args := buildFilterClauses(filter)

	query := `SELECT COUNT(*) FROM profiles`
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}

	var count int64
	if err := sqlx.GetContext(ctx, r.getExecutor(ctx), &count, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count profiles: %w", err)
	}

	return count, nil
}

// Update applies the non-nil fields of the request to the profile
func (r *postgresProfileRepository) Update(ctx context.Context, profileID uuid.UUID, update *models.UpdateProfileRequest) error {
	setClauses := []string{"updated_at = :updated_at"}
	args := map[string]interface{}{
		"id":         profileID,
		"updated_at": time.Now().UTC(),
	}

	if update.Name != nil {
		setClauses = append(setClauses, "name = :name")
		args["name"] = *update.Name
	}
	if update.Nickname != nil {
		setClauses = append(setClauses, "nickname = :nickname")
		args["nickname"] = *update.Nickname
	}
	if update.Avatar != nil {
		setClauses = append(setClauses, "avatar = :avatar")
		args["avatar"] = *update.Avatar
	}
	if update.Bio != nil {
		setClauses = append(setClauses, "bio = :bio")
		args["bio"] = *update.Bio
	}
	if update.Skills != nil {
		setClauses = append(setClauses, "skills = :skills")
		args["skills"] = pq.StringArray(*update.Skills)
	}
	if update.FunFacts != nil {
		setClauses = append(setClauses, "fun_facts = :fun_facts")
		args["fun_facts"] = pq.StringArray(*update.FunFacts)
	}
	if update.Catchphrase != nil {
		setClauses = append(setClauses, "catchphrase = :catchphrase")
		args["catchphrase"] = *update.Catchphrase
	}
	if update.Mood != nil {
		setClauses = append(setClauses, "mood = :mood")
		args["mood"] = *update.Mood
	}
	if update.Level != nil {
		setClauses = append(setClauses, "level = :level")
		args["level"] = *update.Level
	}
	if update.XP != nil {
		setClauses = append(setClauses, "xp = :xp")
		args["xp"] = *update.XP
	}

	query := fmt.Sprintf(`UPDATE profiles SET %s WHERE id = :id`, strings.Join(setClauses, ", "))

	result, err := sqlx.NamedExecContext(ctx, r.getExecutor(ctx), query, args)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if rows == 0 {
		return profileerrors.ErrProfileNotFound
	}

	return nil
}

// UpdateVoteStats sets the denormalized vote count and rank tier
func (r *postgresProfileRepository) UpdateVoteStats(ctx context.Context, profileID uuid.UUID, votes int64, rank models.Rank) error {
	query := `UPDATE profiles SET votes = $1, rank = $2, updated_at = $3 WHERE id = $4`

	result, err := r.getExecutor(ctx).ExecContext(ctx, query, votes, string(rank), time.Now().UTC(), profileID)
	if err != nil {
		return fmt.Errorf("failed to update vote stats: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read vote stats result: %w", err)
	}
	if rows == 0 {
		return profileerrors.ErrProfileNotFound
	}

	return nil
}

// Top retrieves the highest-voted profiles
func (r *postgresProfileRepository) Top(ctx context.Context, limit int) ([]*models.Profile, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM profiles
		ORDER BY votes DESC, created_at DESC
		LIMIT $1`, profileColumns)

	profiles := []*models.Profile{}
	if err := sqlx.SelectContext(ctx, r.getExecutor(ctx), &profiles, query, limit); err != nil {
		return nil, fmt.Errorf("failed to load top profiles: %w", err)
	}

	return profiles, nil
}

// Delete removes a profile
func (r *postgresProfileRepository) Delete(ctx context.Context, profileID uuid.UUID) error {
	result, err := r.getExecutor(ctx).ExecContext(ctx, `DELETE FROM profiles WHERE id = $1`, profileID)
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if rows == 0 {
		return profileerrors.ErrProfileNotFound
	}

	return nil
}

// WithTransaction executes a function within a database transaction
func (r *postgresProfileRepository) WithTransaction(ctx context.Context, fn func(context.Context) error) error {
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
