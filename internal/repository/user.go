package repository

import (
	"context"

	"facilityassist/internal/model"
)

// UserRepository defines data access for user accounts.
type UserRepository interface {
	// Create inserts a new user row and returns the stored record.
	Create(ctx context.Context, user *model.User) (*model.User, error)

	// FindByID returns a user by primary key.
	FindByID(ctx context.Context, id int64) (*model.User, error)

	// FindByUsername returns a user by their unique username.
	FindByUsername(ctx context.Context, username string) (*model.User, error)

	// ExistsByUsername reports whether a user with the username exists.
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// List returns all users ordered by creation time.
	List(ctx context.Context) ([]model.User, error)

	// ListByRole returns all users holding the given role.
	ListByRole(ctx context.Context, role model.Role) ([]model.User, error)
}
