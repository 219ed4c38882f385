package repository

import (
	"context"

	uuid "github.com/gofrs/uuid"

	"github.com/nuoidev/api/auth/models"
)

// UserRepository defines the interface for user account database operations.
type UserRepository interface {
	// Create inserts a new user record. Duplicate usernames surface as
	// errors.ErrUserAlreadyExists from the auth errors package.
	Create(ctx context.Context, user *models.User) error

	// FindByID retrieves a user by ID.
	FindByID(ctx context.Context, userID uuid.UUID) (*models.User, error)

	// FindByUsername retrieves a user by username. This is the primary
	// lookup method for login.
	FindByUsername(ctx context.Context, username string) (*models.User, error)

	// Update applies the non-nil fields of the update to the user record.
	Update(ctx context.Context, userID uuid.UUID, update *models.UserUpdate) error

	// WithTransaction executes a function within a database transaction.
	WithTransaction(ctx context.Context, fn func(context.Context) error) error
}
