package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	uuid "github.com/gofrs/uuid"
	"github.com/jmoiron/sqlx"

	autherrors "github.com/nuoidev/api/auth/errors"
	"github.com/nuoidev/api/auth/models"
	"github.com/nuoidev/api/internal/database/postgres"
)

// postgresUserRepository implements UserRepository using raw SQL queries
type postgresUserRepository struct {
	client *postgres.Client
}

// NewPostgresUserRepository creates a new PostgreSQL repository for user accounts
func NewPostgresUserRepository(client *postgres.Client) UserRepository {
	return &postgresUserRepository{
		client: client,
	}
}

// getExecutor returns either the transaction from context or the DB connection
func (r *postgresUserRepository) getExecutor(ctx context.Context) sqlx.ExtContext {
	if txVal := ctx.Value("tx"); txVal != nil {
		if tx, ok := txVal.(*sqlx.Tx); ok {
			return tx
		}
	}
	return r.client.DB()
}

// Create inserts a new user record
func (r *postgresUserRepository) Create(ctx context.Context, user *models.User) error {
	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now
	if user.Role == "" {
		user.Role = "user"
	}

	query := `
		INSERT INTO users (
			id, username, password_hash, display_name, avatar, role,
			created_at, updated_at
		) VALUES (
			:id, :username, :password_hash, :display_name, :avatar, :role,
			:created_at, :updated_at
		)`

	_, err := sqlx.NamedExecContext(ctx, r.getExecutor(ctx), query, user)
	if err != nil {
		if isUniqueConstraintError(err) {
			return autherrors.ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// FindByID retrieves a user by ID
func (r *postgresUserRepository) FindByID(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	query := `
		SELECT id, username, password_hash, display_name, avatar, role,
			created_at, updated_at
		FROM users
		WHERE id = $1`

	var user models.User
	err := sqlx.GetContext(ctx, r.getExecutor(ctx), &user, query, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, autherrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}

	return &user, nil
}

// FindByUsername retrieves a user by username
func (r *postgresUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `
		SELECT id, username, password_hash, display_name, avatar, role,
			created_at, updated_at
		FROM users
		WHERE username = $1`

	var user models.User
	err := sqlx.GetContext(ctx, r.getExecutor(ctx), &user, query, username)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, autherrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user by username: %w", err)
	}

	return &user, nil
}

// Update applies the non-nil fields of the update to the user record
func (r *postgresUserRepository) Update(ctx context.Context, userID uuid.UUID, update *models.UserUpdate) error {
	setClauses := []string{"updated_at = :updated_at"}
	args := map[string]interface{}{
		"id":         userID,
		"updated_at": time.Now().UTC(),
	}

	if update.DisplayName != nil {
		setClauses = append(setClauses, "display_name = :display_name")
		args["display_name"] = *update.DisplayName
	}
	if update.Avatar != nil {
		setClauses = append(setClauses, "avatar = :avatar")
		args["avatar"] = *update.Avatar
	}
	if len(update.Password) > 0 {
		setClauses = append(setClauses, "password_hash = :password_hash")
		args["password_hash"] = update.Password
	}

	query := fmt.Sprintf(`UPDATE users SET %s WHERE id = :id`, strings.Join(setClauses, ", "))

	result, err := sqlx.NamedExecContext(ctx, r.getExecutor(ctx), query, args)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if rows == 0 {
		return autherrors.ErrUserNotFound
	}

	return nil
}

// WithTransaction executes a function within a database transaction
func (r *postgresUserRepository) WithTransaction(ctx context.Context, fn func(context.Context) error) error {
	tx, err := r.client.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	// Shared string key so repositories in other packages join the same tx.
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

// isUniqueConstraintError detects a PostgreSQL unique violation.
// Error format: "pq: duplicate key value violates unique constraint ..."
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "unique constraint") || strings.Contains(errStr, "duplicate key")
}
