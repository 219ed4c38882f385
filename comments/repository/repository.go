package repository

import (
	"context"

	uuid "github.com/gofrs/uuid"

	"github.com/nuoidev/api/comments/models"
)

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	// Create inserts a new comment
	Create(ctx context.Context, comment *models.Comment) error

	// FindByID retrieves a comment by its ID
	FindByID(ctx context.Context, commentID uuid.UUID) (*models.Comment, error)

	// FindByPost retrieves all comments on a post, oldest first
	FindByPost(ctx context.Context, postID uuid.UUID) ([]*models.Comment, error)

	// CountByPost returns the number of comments on a post
	CountByPost(ctx context.Context, postID uuid.UUID) (int64, error)

	// Delete removes a comment
	Delete(ctx context.Context, commentID uuid.UUID) error

	// WithTransaction executes a function within a database transaction
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
