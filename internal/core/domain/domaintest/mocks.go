// Package domaintest provides testify mocks of the domain repositories.
package domaintest

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/duynhne/post-service/internal/core/domain"
)

// TokenRepository is a mock implementation of domain.TokenRepository.
type TokenRepository struct {
	mock.Mock
}

func (m *TokenRepository) Create(ctx context.Context, token, userID string, expiresAt time.Time) error {
	args := m.Called(ctx, token, userID, expiresAt)
	return args.Error(0)
}

func (m *TokenRepository) GetByToken(ctx context.Context, token string) (*domain.TokenRecord, error) {
	args := m.Called(ctx, token)
	rec, _ := args.Get(0).(*domain.TokenRecord)
	return rec, args.Error(1)
}

// UserRepository is a mock implementation of domain.UserRepository.
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}

func (m *UserRepository) Create(ctx context.Context, user domain.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

// PostRepository is a mock implementation of domain.PostRepository.
type PostRepository struct {
	mock.Mock
}

func (m *PostRepository) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*domain.Post)
	return p, args.Error(1)
}

func (m *PostRepository) ListSummariesByUser(ctx context.Context, userID string) ([]domain.PostSummary, error) {
	args := m.Called(ctx, userID)
	posts, _ := args.Get(0).([]domain.PostSummary)
	return posts, args.Error(1)
}

func (m *PostRepository) Create(ctx context.Context, post domain.NewPost) (*domain.Post, error) {
	args := m.Called(ctx, post)
	p, _ := args.Get(0).(*domain.Post)
	return p, args.Error(1)
}

func (m *PostRepository) AdjustLikes(ctx context.Context, id string, delta int) (*domain.Post, error) {
	args := m.Called(ctx, id, delta)
	p, _ := args.Get(0).(*domain.Post)
	return p, args.Error(1)
}
