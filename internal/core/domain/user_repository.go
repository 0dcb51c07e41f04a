package domain

import "context"

// UserRepository defines the data-access contract for user operations.
// Implementations live in internal/core/repository (Core layer).
// The Logic layer depends on this interface only, never on a driver directly.
type UserRepository interface {
	// GetByUsername returns the user matching the given username exactly.
	// Returns (nil, nil) when no user is found.
	GetByUsername(ctx context.Context, username string) (*User, error)

	// Create inserts a new user and returns the generated user ID.
	Create(ctx context.Context, user User) (string, error)
}
