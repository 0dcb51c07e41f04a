package v1

import (
	"context"
	"fmt"
	"slices"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/duynhne/post-service/internal/core/domain"
	"github.com/duynhne/post-service/middleware"
)

// ProfileService composes public profile views.
type ProfileService struct {
	users domain.UserRepository
	posts domain.PostRepository
}

// NewProfileService creates a new ProfileService with the given repository dependencies.
func NewProfileService(users domain.UserRepository, posts domain.PostRepository) *ProfileService {
	return &ProfileService{users: users, posts: posts}
}

// GetProfile returns the user's public attributes and their posts, newest first.
// The user and post reads are independent; a post created between them may or
// may not appear.
func (s *ProfileService) GetProfile(ctx context.Context, username string) (*domain.ProfileView, error) {
	ctx, span := middleware.StartSpan(ctx, "profile.get", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.String("username", username),
	))
	defer span.End()

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("query user %q: %w", username, err)
	}
	if user == nil {
		span.SetAttributes(attribute.Bool("profile.found", false))
		return nil, fmt.Errorf("get profile %q: %w", username, ErrUserNotFound)
	}

	posts, err := s.posts.ListSummariesByUser(ctx, user.ID)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("query posts of user %s: %w", user.ID, err)
	}
	if posts == nil {
		posts = []domain.PostSummary{}
	}
	// Backends already sort; the stable pass keeps the contract for any
	// repository and leaves equal timestamps in the order returned.
	slices.SortStableFunc(posts, func(a, b domain.PostSummary) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	span.SetAttributes(
		attribute.Bool("profile.found", true),
		attribute.Int("profile.posts", len(posts)),
	)

	return &domain.ProfileView{
		ID:             user.ID,
		Username:       user.Username,
		Email:          user.Email,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		Title:          user.Title,
		Bio:            user.Bio,
		Avatar:         user.Avatar,
		AccountType:    user.AccountType,
		FollowersCount: user.FollowersCount,
		FollowingCount: user.FollowingCount,
		Posts:          posts,
	}, nil
}
