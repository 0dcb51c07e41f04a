// Package database opens the configured store and wires the repositories
// the logic layer depends on.
package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/duynhne/post-service/config"
	"github.com/duynhne/post-service/internal/core/domain"
	"github.com/duynhne/post-service/internal/core/repository"
)

// Stores bundles the repositories of one backend together with its lifecycle.
type Stores struct {
	Tokens domain.TokenRepository
	Users  domain.UserRepository
	Posts  domain.PostRepository

	ping  func(ctx context.Context) error
	close func(ctx context.Context) error
}

// Ping checks that the backend is reachable.
func (s *Stores) Ping(ctx context.Context) error {
	return s.ping(ctx)
}

// Close releases the backend's connections.
func (s *Stores) Close(ctx context.Context) error {
	return s.close(ctx)
}

// Connect opens the backend named by cfg.Driver and prepares its indexes or schema.
func Connect(ctx context.Context, cfg config.DatabaseConfig) (*Stores, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.GetConnectTimeoutDuration())
	defer cancel()

	switch cfg.Driver {
	case config.DriverMongo:
		return connectMongo(ctx, cfg)
	case config.DriverPostgres:
		return connectPostgres(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

func connectMongo(ctx context.Context, cfg config.DatabaseConfig) (*Stores, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	db := client.Database(cfg.MongoDatabase)
	if err := repository.EnsureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return &Stores{
		Tokens: repository.NewMongoTokenRepository(db),
		Users:  repository.NewMongoUserRepository(db),
		Posts:  repository.NewMongoPostRepository(db),
		ping: func(ctx context.Context) error {
			return client.Ping(ctx, readpref.Primary())
		},
		close: client.Disconnect,
	}, nil
}

func connectPostgres(ctx context.Context, cfg config.DatabaseConfig) (*Stores, error) {
	pool, err := pgxpool.New(ctx, cfg.PostgresURL)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if err := repository.EnsureSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	return &Stores{
		Tokens: repository.NewPgxTokenRepository(pool),
		Users:  repository.NewPgxUserRepository(pool),
		Posts:  repository.NewPgxPostRepository(pool),
		ping:   pool.Ping,
		close: func(context.Context) error {
			pool.Close()
			return nil
		},
	}, nil
}
