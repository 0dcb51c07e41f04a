package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcmongo "github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/duynhne/post-service/internal/core/domain"
)

func newMongoDatabase(t *testing.T) *mongo.Database {
	t.Helper()
	if testing.Short() {
		t.Skip("container-backed test skipped in -short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	container, err := tcmongo.Run(ctx, "mongo:7")
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err)

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	db := client.Database("postdev_test")
	require.NoError(t, EnsureIndexes(ctx, db))
	return db
}

func TestMongoRepositories(t *testing.T) {
	db := newMongoDatabase(t)
	ctx := context.Background()

	users := NewMongoUserRepository(db)
	posts := NewMongoPostRepository(db)
	tokens := NewMongoTokenRepository(db)

	aliceID := bson.NewObjectID()
	_, err := db.Collection(UserCollection).InsertOne(ctx, bson.D{
		{Key: "_id", Value: aliceID},
		{Key: "username", Value: "alice"},
		{Key: "email", Value: "alice@example.com"},
		{Key: "password", Value: "$2a$10$secret"},
		{Key: "firstname", Value: "Alice"},
		{Key: "followers_count", Value: 2},
		{Key: "__v", Value: 0},
		{Key: "createdAt", Value: time.Now()},
		{Key: "updatedAt", Value: time.Now()},
	})
	require.NoError(t, err)

	t.Run("profile projection hides credentials and timestamps", func(t *testing.T) {
		u, err := users.GetByUsername(ctx, "alice")
		require.NoError(t, err)
		require.NotNil(t, u)
		assert.Equal(t, aliceID.Hex(), u.ID)
		assert.Equal(t, "Alice", u.FirstName)
		assert.Equal(t, 2, u.FollowersCount)
		assert.Empty(t, u.PasswordHash)
		assert.True(t, u.CreatedAt.IsZero())

		raw, err := db.Collection(UserCollection).FindOne(ctx,
			bson.D{{Key: "username", Value: "alice"}},
			options.FindOne().SetProjection(profileProjection),
		).Raw()
		require.NoError(t, err)
		for _, key := range []string{"password", "__v", "createdAt", "updatedAt"} {
			_, lookupErr := raw.LookupErr(key)
			assert.Error(t, lookupErr, "field %s must be projected away", key)
		}
	})

	t.Run("username match is exact", func(t *testing.T) {
		u, err := users.GetByUsername(ctx, "Alice")
		require.NoError(t, err)
		assert.Nil(t, u)
	})

	t.Run("summaries newest first, ties by id", func(t *testing.T) {
		t1 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		t2 := t1.Add(time.Hour)
		t3 := t2.Add(time.Hour)

		// ids minted in order a < b < c < d
		ids := map[string]bson.ObjectID{}
		var docs []any
		for _, p := range []struct {
			name string
			at   time.Time
		}{{"a", t1}, {"b", t3}, {"c", t2}, {"d", t3}} {
			id := bson.NewObjectID()
			ids[p.name] = id
			docs = append(docs, postDocument{
				ID: id, UserID: aliceID, Title: p.name, Content: "body",
				Tags: []string{"x"}, CreatedAt: p.at, UpdatedAt: p.at,
			})
		}
		docs = append(docs, postDocument{ID: bson.NewObjectID(), UserID: bson.NewObjectID(), Title: "other", CreatedAt: t3})
		_, err := db.Collection(PostCollection).InsertMany(ctx, docs)
		require.NoError(t, err)

		got, err := posts.ListSummariesByUser(ctx, aliceID.Hex())
		require.NoError(t, err)

		var order []string
		for _, s := range got {
			order = append(order, s.Title)
		}
		assert.Equal(t, []string{"b", "d", "c", "a"}, order)
		assert.Equal(t, ids["b"].Hex(), got[0].ID)
		assert.True(t, t3.Equal(got[0].CreatedAt))

		cursor, err := db.Collection(PostCollection).Find(ctx,
			bson.D{{Key: "user_id", Value: aliceID}},
			options.Find().SetProjection(summaryProjection),
		)
		require.NoError(t, err)
		var raws []bson.Raw
		require.NoError(t, cursor.All(ctx, &raws))
		require.NotEmpty(t, raws)
		for _, key := range []string{"user_id", "tags", "updatedAt"} {
			_, lookupErr := raws[0].LookupErr(key)
			assert.Error(t, lookupErr, "field %s must not be in a summary", key)
		}
	})

	t.Run("user without posts", func(t *testing.T) {
		got, err := posts.ListSummariesByUser(ctx, bson.NewObjectID().Hex())
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("create, read and like clamp", func(t *testing.T) {
		created, err := posts.Create(ctx, domain.NewPost{UserID: aliceID.Hex(), Title: "new", Content: "body"})
		require.NoError(t, err)

		read, err := posts.GetByID(ctx, created.ID)
		require.NoError(t, err)
		require.NotNil(t, read)
		assert.Equal(t, created.ID, read.ID)
		assert.Equal(t, aliceID.Hex(), read.UserID)
		assert.Equal(t, []string{}, read.Tags)

		liked, err := posts.AdjustLikes(ctx, created.ID, 1)
		require.NoError(t, err)
		assert.Equal(t, 1, liked.LikesCount)

		for i := 0; i < 2; i++ {
			liked, err = posts.AdjustLikes(ctx, created.ID, -1)
			require.NoError(t, err)
		}
		assert.Equal(t, 0, liked.LikesCount)

		missing, err := posts.AdjustLikes(ctx, bson.NewObjectID().Hex(), 1)
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("token round trip with object id owner", func(t *testing.T) {
		expiresAt := time.Now().Add(time.Hour).UTC().Truncate(time.Millisecond)
		require.NoError(t, tokens.Create(ctx, "abc123", aliceID.Hex(), expiresAt))

		rec, err := tokens.GetByToken(ctx, "abc123")
		require.NoError(t, err)
		require.NotNil(t, rec)
		assert.Equal(t, aliceID.Hex(), rec.UserID)
		assert.True(t, expiresAt.Equal(rec.ExpiresAt))

		missing, err := tokens.GetByToken(ctx, "nope")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})
}
