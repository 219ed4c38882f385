package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	uuid "github.com/gofrs/uuid"
	"github.com/jmoiron/sqlx"

	commenterrors "github.com/nuoidev/api/comments/errors"
	"github.com/nuoidev/api/comments/models"
	"github.com/nuoidev/api/internal/database/postgres"
)

const commentColumns = `id, post_id, user_id, author_name, author_avatar, content, parent_id, created_at`

// postgresCommentRepository implements CommentRepository using raw SQL queries
type postgresCommentRepository struct {
	client *postgres.Client
}

// NewPostgresCommentRepository creates a new PostgreSQL repository for comments
func NewPostgresCommentRepository(client *postgres.Client) CommentRepository {
	return &postgresCommentRepository{
		client: client,
	}
}

// getExecutor returns either the transaction from context or the DB connection
func (r *postgresCommentRepository) getExecutor(ctx context.Context) sqlx.ExtContext {
	if txVal := ctx.Value("tx"); txVal != nil {
		if tx, ok := txVal.(*sqlx.Tx); ok {
			return tx
		}
	}
	return r.client.DB()
}

// Create inserts a new comment
func (r *postgresCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO comments (
			id, post_id, user_id, author_name, author_avatar, content, parent_id, created_at
		) VALUES (
			:id, :post_id, :user_id, :author_name, :author_avatar, :content, :parent_id, :created_at
		)`

	if _, err := sqlx.NamedExecContext(ctx, r.getExecutor(ctx), query, comment); err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	return nil
}

// FindByID retrieves a comment by its ID
func (r *postgresCommentRepository) FindByID(ctx context.Context, commentID uuid.UUID) (*models.Comment, error) {
	query := fmt.Sprintf(`SELECT %s FROM comments WHERE id = $1`, commentColumns)

	var comment models.Comment
	err := sqlx.GetContext(ctx, r.getExecutor(ctx), &comment, query, commentID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, commenterrors.ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to find comment by ID: %w", err)
	}

	return &comment, nil
}

// FindByPost retrieves all comments on a post, oldest first
func (r *postgresCommentRepository) FindByPost(ctx context.Context, postID uuid.UUID) ([]*models.Comment, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM comments
		WHERE post_id = $1
		ORDER BY created_at ASC`, commentColumns)

	comments := []*models.Comment{}
	if err := sqlx.SelectContext(ctx, r.getExecutor(ctx), &comments, query, postID); err != nil {
		return nil, fmt.Errorf("failed to find comments: %w", err)
	}

	return comments, nil
}

// CountByPost returns the number of comments on a post
func (r *postgresCommentRepository) CountByPost(ctx context.Context, postID uuid.UUID) (int64, error) {
	var count int64
	err := sqlx.GetContext(ctx, r.getExecutor(ctx), &count, `SELECT COUNT(*) FROM comments WHERE post_id = $1`, postID)
	if err != nil {
		return 0, fmt.Errorf("failed to count comments: %w", err)
	}

	return count, nil
}

// Delete removes a comment
func (r *postgresCommentRepository) Delete(ctx context.Context, commentID uuid.UUID) error {
	result, err := r.getExecutor(ctx).ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, commentID)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if rows == 0 {
		return commenterrors.ErrCommentNotFound
	}

	return nil
}

// WithTransaction executes a function within a database transaction
func (r *postgresCommentRepository) WithTransaction(ctx context.Context, fn func(context.Context) error) error {
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
