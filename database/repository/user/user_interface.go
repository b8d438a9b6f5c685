package userRepo

import (
	"context"
	"errors"

	"commit/models"

	"go.mongodb.org/mongo-driver/bson"
)

// ErrNotFound is returned when no user matches the lookup.
var ErrNotFound = errors.New("user not found")

// UserRepository defines methods for customer/admin account data access.
type UserRepository interface {
	// GetByID retrieves a user by its unique ID.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByEmail retrieves a user by email. It returns (nil, nil) when absent.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// Create inserts a new user record.
	Create(ctx context.Context, user *models.User) error
	// UpdateFields applies a $set of the given fields and bumps updated_at.
	UpdateFields(ctx context.Context, id string, fields bson.M) error
	// SetPassword replaces the stored password hash.
	SetPassword(ctx context.Context, id, hash string) error
}
