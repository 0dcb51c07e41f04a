package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/duynhne/post-service/internal/core/domain"
)

// PgxUserRepository implements domain.UserRepository using pgxpool.
type PgxUserRepository struct {
	pool *pgxpool.Pool
}

// NewPgxUserRepository creates a new PgxUserRepository.
func NewPgxUserRepository(pool *pgxpool.Pool) *PgxUserRepository {
	return &PgxUserRepository{pool: pool}
}

// GetByUsername returns the user matching the given username.
// The password column is not selected.
// Returns (nil, nil) when no user is found.
func (r *PgxUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `
		SELECT id, username, email, firstname, lastname, title, bio, avatar,
		       account_type, followers_count, following_count
		FROM users
		WHERE username = $1
	`

	var u domain.User
	err := r.pool.QueryRow(ctx, query, username).Scan(
		&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName, &u.Title, &u.Bio, &u.Avatar,
		&u.AccountType, &u.FollowersCount, &u.FollowingCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &u, nil
}

// Create inserts a new user and returns the generated user ID.
func (r *PgxUserRepository) Create(ctx context.Context, user domain.User) (string, error) {
	query := `
		INSERT INTO users (id, username, email, password, firstname, lastname, title, bio, avatar,
		                   account_type, followers_count, following_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	id := domain.NewID()
	_, err := r.pool.Exec(ctx, query,
		id, user.Username, user.Email, user.PasswordHash, user.FirstName, user.LastName,
		user.Title, user.Bio, user.Avatar, user.AccountType, user.FollowersCount, user.FollowingCount,
	)
	if err != nil {
		return "", err
	}

	return id, nil
}
