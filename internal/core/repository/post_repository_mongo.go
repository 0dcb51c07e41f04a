package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/duynhne/post-service/internal/core/domain"
)

// PostCollection is the collection holding posts.
const PostCollection = "posts"

type postDocument struct {
	ID            bson.ObjectID `bson:"_id,omitempty"`
	UserID        bson.ObjectID `bson:"user_id"`
	Title         string        `bson:"title"`
	Content       string        `bson:"content"`
	Image         string        `bson:"image"`
	Tags          []string      `bson:"tags"`
	LikesCount    int           `bson:"likes_count"`
	CommentsCount int           `bson:"comments_count"`
	CreatedAt     time.Time     `bson:"createdAt"`
	UpdatedAt     time.Time     `bson:"updatedAt"`
}

func (d postDocument) toDomain() *domain.Post {
	tags := d.Tags
	if tags == nil {
		tags = []string{}
	}
	return &domain.Post{
		ID:            d.ID.Hex(),
		UserID:        d.UserID.Hex(),
		Title:         d.Title,
		Content:       d.Content,
		Image:         d.Image,
		Tags:          tags,
		LikesCount:    d.LikesCount,
		CommentsCount: d.CommentsCount,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

var summaryProjection = bson.D{
	{Key: "_id", Value: 1},
	{Key: "title", Value: 1},
	{Key: "content", Value: 1},
	{Key: "image", Value: 1},
	{Key: "likes_count", Value: 1},
	{Key: "comments_count", Value: 1},
	{Key: "createdAt", Value: 1},
}

// newest first; equal timestamps are ordered by _id, which follows insertion
// order only for ids minted by one process
var summarySort = bson.D{
	{Key: "createdAt", Value: -1},
	{Key: "_id", Value: 1},
}

// MongoPostRepository implements domain.PostRepository on a MongoDB collection.
type MongoPostRepository struct {
	coll *mongo.Collection
}

// NewMongoPostRepository creates a new MongoPostRepository.
func NewMongoPostRepository(db *mongo.Database) *MongoPostRepository {
	return &MongoPostRepository{coll: db.Collection(PostCollection)}
}

// GetByID returns the post with the given hex ID.
// Returns (nil, nil) when no post is found.
func (r *MongoPostRepository) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var doc postDocument
	err = r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}

	return doc.toDomain(), nil
}

// ListSummariesByUser returns the user's posts, newest first.
// A user ID that is not an object ID owns no posts.
func (r *MongoPostRepository) ListSummariesByUser(ctx context.Context, userID string) ([]domain.PostSummary, error) {
	oid, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return []domain.PostSummary{}, nil
	}

	opts := options.Find().SetProjection(summaryProjection).SetSort(summarySort)
	cursor, err := r.coll.Find(ctx, bson.D{{Key: "user_id", Value: oid}}, opts)
	if err != nil {
		return nil, err
	}

	var docs []postDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	posts := make([]domain.PostSummary, 0, len(docs))
	for _, d := range docs {
		posts = append(posts, domain.PostSummary{
			ID:            d.ID.Hex(),
			Title:         d.Title,
			Content:       d.Content,
			Image:         d.Image,
			LikesCount:    d.LikesCount,
			CommentsCount: d.CommentsCount,
			CreatedAt:     d.CreatedAt,
		})
	}

	return posts, nil
}

// Create inserts a new post with zero counters.
func (r *MongoPostRepository) Create(ctx context.Context, post domain.NewPost) (*domain.Post, error) {
	owner, err := bson.ObjectIDFromHex(post.UserID)
	if err != nil {
		return nil, err
	}

	tags := post.Tags
	if tags == nil {
		tags = []string{}
	}
	now := time.Now().UTC().Truncate(time.Millisecond)
	doc := postDocument{
		ID:        bson.NewObjectID(),
		UserID:    owner,
		Title:     post.Title,
		Content:   post.Content,
		Image:     post.Image,
		Tags:      tags,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, err
	}

	return doc.toDomain(), nil
}

// AdjustLikes adds delta to likes_count with an update pipeline that clamps at zero.
// Returns (nil, nil) when no post is found.
func (r *MongoPostRepository) AdjustLikes(ctx context.Context, id string, delta int) (*domain.Post, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	likes := bson.D{{Key: "$max", Value: bson.A{
		0,
		bson.D{{Key: "$add", Value: bson.A{
			bson.D{{Key: "$ifNull", Value: bson.A{"$likes_count", 0}}},
			delta,
		}}},
	}}}
	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "likes_count", Value: likes},
			{Key: "updatedAt", Value: time.Now().UTC()},
		}}},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc postDocument
	err = r.coll.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: oid}}, update, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}

	return doc.toDomain(), nil
}
