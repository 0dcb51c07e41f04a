package v1

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/duynhne/post-service/internal/core/domain"
	"github.com/duynhne/post-service/middleware"
)

// PostService reads posts and applies the small set of post writes the API exposes.
type PostService struct {
	posts domain.PostRepository
}

// NewPostService creates a new PostService.
func NewPostService(posts domain.PostRepository) *PostService {
	return &PostService{posts: posts}
}

// GetPost returns the post with the given id. Malformed ids are rejected
// before the store is queried.
func (s *PostService) GetPost(ctx context.Context, id string) (*domain.Post, error) {
	ctx, span := middleware.StartSpan(ctx, "post.get", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.String("post.id", id),
	))
	defer span.End()

	if !domain.IsValidID(id) {
		span.SetAttributes(attribute.Bool("post.valid_id", false))
		return nil, fmt.Errorf("get post %q: %w", id, ErrInvalidPostID)
	}

	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("query post %s: %w", id, err)
	}
	if post == nil {
		return nil, fmt.Errorf("get post %s: %w", id, ErrPostNotFound)
	}

	return post, nil
}

// CreatePost stores a new post owned by the admitted token's user.
func (s *PostService) CreatePost(ctx context.Context, owner *domain.TokenRecord, in domain.NewPost) (*domain.Post, error) {
	ctx, span := middleware.StartSpan(ctx, "post.create", trace.WithAttributes(
		attribute.String("layer", "logic"),
	))
	defer span.End()

	if owner == nil || owner.UserID == "" {
		return nil, fmt.Errorf("create post: %w", ErrTokenUnbound)
	}
	if !domain.IsValidID(owner.UserID) {
		return nil, fmt.Errorf("create post for owner %q: %w", owner.UserID, ErrInvalidInput)
	}

	in.UserID = owner.UserID
	in.Title = strings.TrimSpace(in.Title)
	in.Content = strings.TrimSpace(in.Content)
	if in.Title == "" || in.Content == "" {
		return nil, fmt.Errorf("create post: title and content are required: %w", ErrInvalidInput)
	}
	in.Tags = normalizeTags(in.Tags)

	post, err := s.posts.Create(ctx, in)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("insert post: %w", err)
	}

	span.SetAttributes(attribute.String("post.id", post.ID))
	return post, nil
}

// LikePost increments the post's like count.
func (s *PostService) LikePost(ctx context.Context, id string) (*domain.Post, error) {
	return s.adjustLikes(ctx, "post.like", id, 1)
}

// UnlikePost decrements the post's like count, never below zero.
func (s *PostService) UnlikePost(ctx context.Context, id string) (*domain.Post, error) {
	return s.adjustLikes(ctx, "post.unlike", id, -1)
}

func (s *PostService) adjustLikes(ctx context.Context, spanName, id string, delta int) (*domain.Post, error) {
	ctx, span := middleware.StartSpan(ctx, spanName, trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.String("post.id", id),
	))
	defer span.End()

	if !domain.IsValidID(id) {
		return nil, fmt.Errorf("%s %q: %w", spanName, id, ErrInvalidPostID)
	}

	post, err := s.posts.AdjustLikes(ctx, id, delta)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("update likes of post %s: %w", id, err)
	}
	if post == nil {
		return nil, fmt.Errorf("%s %s: %w", spanName, id, ErrPostNotFound)
	}

	return post, nil
}

// normalizeTags trims tags, drops empty ones and a leading '#', and removes duplicates.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(t), "#"))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
