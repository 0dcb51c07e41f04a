// Seed tool: inserts a demo account, a few posts and a session token into the
// configured store so the read endpoints and the session gate can be exercised
// by hand.
package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/duynhne/post-service/config"
	database "github.com/duynhne/post-service/internal/core"
	"github.com/duynhne/post-service/internal/core/domain"
	"github.com/duynhne/post-service/pkg/logger/zerolog"
)

func main() {
	var username string
	var numPosts int
	var tokenTTL time.Duration
	flag.StringVar(&username, "username", "alice", "username of the demo account")
	flag.IntVar(&numPosts, "posts", 3, "number of posts to create for the account")
	flag.DurationVar(&tokenTTL, "token-ttl", 24*time.Hour, "lifetime of the issued token")
	flag.Parse()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		panic("Configuration validation failed: " + err.Error())
	}
	zerolog.Setup(cfg.Logging.Level)

	ctx := context.Background()
	stores, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer stores.Close(ctx)

	userID, err := stores.Users.Create(ctx, domain.User{
		Username:    username,
		Email:       username + "@example.com",
		FirstName:   "Demo",
		LastName:    "User",
		Title:       "Writer",
		Bio:         "Seeded account",
		AccountType: "personal",
	})
	if err != nil {
		log.Fatal().Err(err).Str("username", username).Msg("Failed to create user")
	}

	for i := 1; i <= numPosts; i++ {
		post, err := stores.Posts.Create(ctx, domain.NewPost{
			UserID:  userID,
			Title:   fmt.Sprintf("Post #%d", i),
			Content: fmt.Sprintf("Seeded content for post %d.", i),
			Tags:    []string{"seed"},
		})
		if err != nil {
			log.Fatal().Err(err).Int("index", i).Msg("Failed to create post")
		}
		log.Info().Str("post_id", post.ID).Msg("Post created")
		// distinct createdAt values keep the profile ordering observable
		time.Sleep(10 * time.Millisecond)
	}

	token := uuid.NewString()
	expiresAt := time.Now().Add(tokenTTL).UTC()
	if err := stores.Tokens.Create(ctx, token, userID, expiresAt); err != nil {
		log.Fatal().Err(err).Msg("Failed to create token")
	}

	log.Info().
		Str("user_id", userID).
		Str("username", username).
		Str("token", token).
		Time("expires_at", expiresAt).
		Msg("Seed complete")
}
