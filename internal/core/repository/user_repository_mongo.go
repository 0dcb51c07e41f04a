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

// UserCollection is the collection holding accounts.
const UserCollection = "users"

type userDocument struct {
	ID             bson.ObjectID `bson:"_id,omitempty"`
	Username       string        `bson:"username"`
	Email          string        `bson:"email"`
	Password       string        `bson:"password,omitempty"`
	FirstName      string        `bson:"firstname"`
	LastName       string        `bson:"lastname"`
	Title          string        `bson:"title"`
	Bio            string        `bson:"bio"`
	Avatar         string        `bson:"avatar"`
	AccountType    string        `bson:"accountType"`
	FollowersCount int           `bson:"followers_count"`
	FollowingCount int           `bson:"following_count"`
	CreatedAt      time.Time     `bson:"createdAt,omitempty"`
	UpdatedAt      time.Time     `bson:"updatedAt,omitempty"`
}

// profileProjection hides credentials, the document version and raw timestamps.
var profileProjection = bson.D{
	{Key: "password", Value: 0},
	{Key: "__v", Value: 0},
	{Key: "createdAt", Value: 0},
	{Key: "updatedAt", Value: 0},
}

// MongoUserRepository implements domain.UserRepository on a MongoDB collection.
type MongoUserRepository struct {
	coll *mongo.Collection
}

// NewMongoUserRepository creates a new MongoUserRepository.
func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{coll: db.Collection(UserCollection)}
}

// GetByUsername returns the user matching username exactly.
// Returns (nil, nil) when no user is found.
func (r *MongoUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	opts := options.FindOne().SetProjection(profileProjection)

	var doc userDocument
	err := r.coll.FindOne(ctx, bson.D{{Key: "username", Value: username}}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}

	return &domain.User{
		ID:             doc.ID.Hex(),
		Username:       doc.Username,
		Email:          doc.Email,
		FirstName:      doc.FirstName,
		LastName:       doc.LastName,
		Title:          doc.Title,
		Bio:            doc.Bio,
		Avatar:         doc.Avatar,
		AccountType:    doc.AccountType,
		FollowersCount: doc.FollowersCount,
		FollowingCount: doc.FollowingCount,
	}, nil
}

// Create inserts a new user and returns the generated user ID.
func (r *MongoUserRepository) Create(ctx context.Context, user domain.User) (string, error) {
	now := time.Now().UTC()
	doc := userDocument{
		ID:             bson.NewObjectID(),
		Username:       user.Username,
		Email:          user.Email,
		Password:       user.PasswordHash,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		Title:          user.Title,
		Bio:            user.Bio,
		Avatar:         user.Avatar,
		AccountType:    user.AccountType,
		FollowersCount: user.FollowersCount,
		FollowingCount: user.FollowingCount,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return "", err
	}
	return doc.ID.Hex(), nil
}
