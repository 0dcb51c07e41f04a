package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/duynhne/post-service/internal/core/domain"
)

// PgxTokenRepository implements domain.TokenRepository using pgxpool.
type PgxTokenRepository struct {
	pool *pgxpool.Pool
}

// NewPgxTokenRepository creates a new PgxTokenRepository.
func NewPgxTokenRepository(pool *pgxpool.Pool) *PgxTokenRepository {
	return &PgxTokenRepository{pool: pool}
}

// Create inserts a new token record.
func (r *PgxTokenRepository) Create(ctx context.Context, token, userID string, expiresAt time.Time) error {
	query := `INSERT INTO user_auths (token, user_id, expires_at) VALUES ($1, $2, $3)`
	_, err := r.pool.Exec(ctx, query, token, userID, expiresAt)
	return err
}

// GetByToken looks up the record by token.
// Returns (nil, nil) when the token does not match any record.
func (r *PgxTokenRepository) GetByToken(ctx context.Context, token string) (*domain.TokenRecord, error) {
	query := `SELECT token, user_id, expires_at FROM user_auths WHERE token = $1`

	var rec domain.TokenRecord
	err := r.pool.QueryRow(ctx, query, token).Scan(&rec.Token, &rec.UserID, &rec.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &rec, nil
}
