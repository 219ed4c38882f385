package repository

import (
	"context"

	uuid "github.com/gofrs/uuid"

	"github.com/nuoidev/api/posts/models"
)

// PostRepository defines the interface for post data access
type PostRepository interface {
	// Create inserts a new post
	Create(ctx context.Context, post *models.Post) error

	// FindByID retrieves a post by its ID
	FindByID(ctx context.Context, postID uuid.UUID) (*models.Post, error)

	// Find retrieves posts ordered pinned-first, newest-first
	Find(ctx context.Context, limit, offset int) ([]*models.Post, error)

	// Count returns the total number of posts
	Count(ctx context.Context) (int64, error)

	// IncrementLikes adds one to the like counter and returns the new value
	IncrementLikes(ctx context.Context, postID uuid.UUID) (int64, error)

	// SetPinned updates the pinned flag
	SetPinned(ctx context.Context, postID uuid.UUID, pinned bool) error

	// SetCommentCount overwrites the denormalized comment counter
	SetCommentCount(ctx context.Context, postID uuid.UUID, count int64) error

	// Delete removes a post
	Delete(ctx context.Context, postID uuid.UUID) error

	// WithTransaction executes a function within a database transaction
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
