package domain

import (
	"context"
	"time"
)

// TokenRepository defines the data-access contract for Token Records.
// Implementations live in internal/core/repository (Core layer).
type TokenRepository interface {
	// Create stores a new token record.
	Create(ctx context.Context, token, userID string, expiresAt time.Time) error

	// GetByToken returns the record whose token equals the given value.
	// Returns (nil, nil) when the token does not match any record.
	GetByToken(ctx context.Context, token string) (*TokenRecord, error)
}
