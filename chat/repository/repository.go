package repository

import (
	"context"

	"github.com/nuoidev/api/chat/models"
)

// MessageRepository defines the interface for chat message data access
type MessageRepository interface {
	// Create inserts a new message
	Create(ctx context.Context, message *models.Message) error

	// FindRecent retrieves the latest messages, returned oldest first
	FindRecent(ctx context.Context, limit int) ([]*models.Message, error)

	// Prune deletes everything but the latest keep messages and returns the
	// number of rows removed
	Prune(ctx context.Context, keep int) (int64, error)

	// WithTransaction executes a function within a database transaction
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
