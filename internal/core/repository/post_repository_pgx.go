package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/duynhne/post-service/internal/core/domain"
)

// PgxPostRepository implements domain.PostRepository using pgxpool.
type PgxPostRepository struct {
	pool *pgxpool.Pool
}

// NewPgxPostRepository creates a new PgxPostRepository.
func NewPgxPostRepository(pool *pgxpool.Pool) *PgxPostRepository {
	return &PgxPostRepository{pool: pool}
}

const postColumns = `id, user_id, title, content, image, tags, likes_count, comments_count, created_at, updated_at`

func scanPost(row pgx.Row) (*domain.Post, error) {
	var p domain.Post
	err := row.Scan(
		&p.ID, &p.UserID, &p.Title, &p.Content, &p.Image, &p.Tags,
		&p.LikesCount, &p.CommentsCount, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	return &p, nil
}

// GetByID returns the post with the given ID.
// Returns (nil, nil) when no post is found.
func (r *PgxPostRepository) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`
	return scanPost(r.pool.QueryRow(ctx, query, id))
}

// ListSummariesByUser returns the user's posts, newest first.
// seq is the insertion sequence and keeps ties in storage order.
func (r *PgxPostRepository) ListSummariesByUser(ctx context.Context, userID string) ([]domain.PostSummary, error) {
	query := `
		SELECT id, title, content, image, likes_count, comments_count, created_at
		FROM posts
		WHERE user_id = $1
		ORDER BY created_at DESC, seq ASC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []domain.PostSummary{}
	for rows.Next() {
		var s domain.PostSummary
		if err := rows.Scan(&s.ID, &s.Title, &s.Content, &s.Image, &s.LikesCount, &s.CommentsCount, &s.CreatedAt); err != nil {
			return nil, err
		}
		posts = append(posts, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}

// Create inserts a new post with zero counters.
func (r *PgxPostRepository) Create(ctx context.Context, post domain.NewPost) (*domain.Post, error) {
	query := `
		INSERT INTO posts (id, user_id, title, content, image, tags, likes_count, comments_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, 0, 0, $7, $7)
		RETURNING ` + postColumns

	tags := post.Tags
	if tags == nil {
		tags = []string{}
	}
	now := time.Now().UTC()
	return scanPost(r.pool.QueryRow(ctx, query,
		domain.NewID(), post.UserID, post.Title, post.Content, post.Image, tags, now,
	))
}

// AdjustLikes adds delta to likes_count, clamped at zero.
// Returns (nil, nil) when no post is found.
func (r *PgxPostRepository) AdjustLikes(ctx context.Context, id string, delta int) (*domain.Post, error) {
	query := `
		UPDATE posts
		SET likes_count = GREATEST(likes_count + $2, 0), updated_at = $3
		WHERE id = $1
		RETURNING ` + postColumns

	return scanPost(r.pool.QueryRow(ctx, query, id, delta, time.Now().UTC()))
}
