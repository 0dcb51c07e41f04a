package domain

import "context"

// PostRepository defines the data-access contract for post operations.
type PostRepository interface {
	// GetByID returns the post with the given ID.
	// Returns (nil, nil) when no post is found.
	GetByID(ctx context.Context, id string) (*Post, error)

	// ListSummariesByUser returns the posts owned by userID, newest first.
	// Ties on creation time keep storage order.
	ListSummariesByUser(ctx context.Context, userID string) ([]PostSummary, error)

	// Create inserts a new post and returns it as stored.
	Create(ctx context.Context, post NewPost) (*Post, error)

	// AdjustLikes adds delta to the post's like count, never going below zero.
	// Returns (nil, nil) when no post is found.
	AdjustLikes(ctx context.Context, id string, delta int) (*Post, error)
}
