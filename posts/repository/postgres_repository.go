package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	uuid "github.com/gofrs/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/nuoidev/api/internal/database/postgres"
	posterrors "github.com/nuoidev/api/posts/errors"
	"github.com/nuoidev/api/posts/models"
)

const postColumns = `id, user_id, author_name, author_avatar, content, type,
	target_profile_id, images, likes, comment_count, pinned, created_at`

// postgresPostRepository implements PostRepository using raw SQL queries
type postgresPostRepository struct {
	client *postgres.Client
}

// NewPostgresPostRepository creates a new PostgreSQL repository for posts
func NewPostgresPostRepository(client *postgres.Client) PostRepository {
	return &postgresPostRepository{
		client: client,
	}
}

// getExecutor returns either the transaction from context or the DB connection
func (r *postgresPostRepository) getExecutor(ctx context.Context) sqlx.ExtContext {
	if txVal := ctx.Value("tx"); txVal != nil {
		if tx, ok := txVal.(*sqlx.Tx); ok {
			return tx
		}
	}
	return r.client.DB()
}

// Create inserts a new post
func (r *postgresPostRepository) Create(ctx context.Context, post *models.Post) error {
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now().UTC()
	}
	if post.Images == nil {
		post.Images = pq.StringArray{}
	}

	query := `
		INSERT INTO posts (
			id, user_id, author_name, author_avatar, content, type,
			target_profile_id, images, likes, comment_count, pinned, created_at
		) VALUES (
			:id, :user_id, :author_name, :author_avatar, :content, :type,
			:target_profile_id, :images, :likes, :comment_count, :pinned, :created_at
		)`

	if _, err := sqlx.NamedExecContext(ctx, r.getExecutor(ctx), query, post); err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}

	return nil
}

// FindByID retrieves a post by its ID
func (r *postgresPostRepository) FindByID(ctx context.Context, postID uuid.UUID) (*models.Post, error) {
	query := fmt.Sprintf(`SELECT %s FROM posts WHERE id = $1`, postColumns)

	var post models.Post
	err := sqlx.GetContext(ctx, r.getExecutor(ctx), &post, query, postID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, posterrors.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to find post by ID: %w", err)
	}

	return &post, nil
}

// Find retrieves posts ordered pinned-first, newest-first
func (r *postgresPostRepository) Find(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM posts
		ORDER BY pinned DESC, created_at DESC
		LIMIT $1 OFFSET $2`, postColumns)

	posts := []*models.Post{}
	if err := sqlx.SelectContext(ctx, r.getExecutor(ctx), &posts, query, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to find posts: %w", err)
	}

	return posts, nil
}

// Count returns the total number of posts
func (r *postgresPostRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := sqlx.GetContext(ctx, r.getExecutor(ctx), &count, `SELECT COUNT(*) FROM posts`); err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}

	return count, nil
}

// IncrementLikes adds one to the like counter and returns the new value
func (r *postgresPostRepository) IncrementLikes(ctx context.Context, postID uuid.UUID) (int64, error) {
	query := `UPDATE posts SET likes = likes + 1 WHERE id = $1 RETURNING likes`

	var likes int64
	err := sqlx.GetContext(ctx, r.getExecutor(ctx), &likes, query, postID)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, posterrors.ErrPostNotFound
		}
		return 0, fmt.Errorf("failed to increment likes: %w", err)
	}

	return likes, nil
}

// SetPinned updates the pinned flag
func (r *postgresPostRepository) SetPinned(ctx context.Context, postID uuid.UUID, pinned bool) error {
	result, err := r.getExecutor(ctx).ExecContext(ctx, `UPDATE posts SET pinned = $1 WHERE id = $2`, pinned, postID)
	if err != nil {
		return fmt.Errorf("failed to update pinned flag: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read pin result: %w", err)
	}
	if rows == 0 {
		return posterrors.ErrPostNotFound
	}

	return nil
}

// SetCommentCount overwrites the denormalized comment counter
func (r *postgresPostRepository) SetCommentCount(ctx context.Context, postID uuid.UUID, count int64) error {
	result, err := r.getExecutor(ctx).ExecContext(ctx, `UPDATE posts SET comment_count = $1 WHERE id = $2`, count, postID)
	if err != nil {
		return fmt.Errorf("failed to update comment count: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read comment count result: %w", err)
	}
	if rows == 0 {
		return posterrors.ErrPostNotFound
	}

	return nil
}

// Delete removes a post
func (r *postgresPostRepository) Delete(ctx context.Context, postID uuid.UUID) error {
	result, err := r.getExecutor(ctx).ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, postID)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if rows == 0 {
		return posterrors.ErrPostNotFound
	}

	return nil
}

// WithTransaction executes a function within a database transaction
func (r *postgresPostRepository) WithTransaction(ctx context.Context, fn func(context.Context) error) error {
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
