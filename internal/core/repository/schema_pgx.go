package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id              TEXT PRIMARY KEY,
		username        TEXT NOT NULL UNIQUE,
		email           TEXT NOT NULL,
		password        TEXT NOT NULL DEFAULT '',
		firstname       TEXT NOT NULL DEFAULT '',
		lastname        TEXT NOT NULL DEFAULT '',
		title           TEXT NOT NULL DEFAULT '',
		bio             TEXT NOT NULL DEFAULT '',
		avatar          TEXT NOT NULL DEFAULT '',
		account_type    TEXT NOT NULL DEFAULT '',
		followers_count INTEGER NOT NULL DEFAULT 0,
		following_count INTEGER NOT NULL DEFAULT 0,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS posts (
		seq            BIGSERIAL,
		id             TEXT PRIMARY KEY,
		user_id        TEXT NOT NULL,
		title          TEXT NOT NULL,
		content        TEXT NOT NULL,
		image          TEXT NOT NULL DEFAULT '',
		tags           TEXT[] NOT NULL DEFAULT '{}',
		likes_count    INTEGER NOT NULL DEFAULT 0,
		comments_count INTEGER NOT NULL DEFAULT 0,
		created_at     TIMESTAMPTZ NOT NULL,
		updated_at     TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS posts_user_created_idx ON posts (user_id, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS user_auths (
		token      TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL DEFAULT '',
		expires_at TIMESTAMPTZ NOT NULL
	)`,
}

// EnsureSchema creates the tables used by the pgx repositories if they are missing.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
