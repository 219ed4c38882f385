package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/nuoidev/api/chat/models"
	"github.com/nuoidev/api/internal/database/postgres"
)

const messageColumns = `id, user_id, profile_id, sender_name, avatar, message, reply_to_id, created_at`

// postgresMessageRepository implements MessageRepository using raw SQL queries
type postgresMessageRepository struct {
	client *postgres.Client
}

// NewPostgresMessageRepository creates a new PostgreSQL repository for chat messages
func NewPostgresMessageRepository(client *postgres.Client) MessageRepository {
	return &postgresMessageRepository{
		client: client,
	}
}

// getExecutor returns either the transaction from context or the DB connection
func (r *postgresMessageRepository) getExecutor(ctx context.Context) sqlx.ExtContext {
	if txVal := ctx.Value("tx"); txVal != nil {
		if tx, ok := txVal.(*sqlx.Tx); ok {
			return tx
		}
	}
	return r.client.DB()
}

// Create inserts a new message
func (r *postgresMessageRepository) Create(ctx context.Context, message *models.Message) error {
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO chat_messages (
			id, user_id, profile_id, sender_name, avatar, message, reply_to_id, created_at
		) VALUES (
			:id, :user_id, :profile_id, :sender_name, :avatar, :message, :reply_to_id, :created_at
		)`

	if _, err := sqlx.NamedExecContext(ctx, r.getExecutor(ctx), query, message); err != nil {
		return fmt.Errorf("failed to create chat message: %w", err)
	}

	return nil
}

// FindRecent retrieves the latest messages, returned oldest first. The inner
// query selects the newest rows; the outer one restores chronological order.
func (r *postgresMessageRepository) FindRecent(ctx context.Context, limit int) ([]*models.Message, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM (
			SELECT %s FROM chat_messages
			ORDER BY created_at DESC, id DESC
			LIMIT $1
		) recent
		ORDER BY created_at ASC, id ASC`, messageColumns, messageColumns)

	messages := []*models.Message{}
	if err := sqlx.SelectContext(ctx, r.getExecutor(ctx), &messages, query, limit); err != nil {
		return nil, fmt.Errorf("failed to load recent messages: %w", err)
	}

	return messages, nil
}

// Prune deletes everything but the latest keep messages
func (r *postgresMessageRepository) Prune(ctx context.Context, keep int) (int64, error) {
	query := `
		DELETE FROM chat_messages
		WHERE id NOT IN (
			SELECT id FROM chat_messages
			ORDER BY created_at DESC, id DESC
			LIMIT $1
		)`

	result, err := r.getExecutor(ctx).ExecContext(ctx, query, keep)
	if err != nil {
		return 0, fmt.Errorf("failed to prune chat messages: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read prune result: %w", err)
	}

	return rows, nil
}

// WithTransaction executes a function within a database transaction
func (r *postgresMessageRepository) WithTransaction(ctx context.Context, fn func(context.Context) error) error {
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
