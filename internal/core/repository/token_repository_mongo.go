package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/duynhne/post-service/internal/core/domain"
)

// TokenCollection is the collection holding Token Records.
const TokenCollection = "user_auths"

type tokenDocument struct {
	ID             bson.ObjectID `bson:"_id,omitempty"`
	HashedToken    string        `bson:"hashed_token"`
	UserID         bson.RawValue `bson:"user_id,omitempty"`
	ExpirationTime bson.RawValue `bson:"expiration_time"`
}

// MongoTokenRepository implements domain.TokenRepository on a MongoDB collection.
type MongoTokenRepository struct {
	coll *mongo.Collection
}

// NewMongoTokenRepository creates a new MongoTokenRepository.
func NewMongoTokenRepository(db *mongo.Database) *MongoTokenRepository {
	return &MongoTokenRepository{coll: db.Collection(TokenCollection)}
}

// Create stores the expiration as a BSON date and the owner as an ObjectID,
// matching how posts reference their owner.
func (r *MongoTokenRepository) Create(ctx context.Context, token, userID string, expiresAt time.Time) error {
	var owner any = userID
	if oid, err := bson.ObjectIDFromHex(userID); err == nil {
		owner = oid
	}
	_, err := r.coll.InsertOne(ctx, bson.D{
		{Key: "hashed_token", Value: token},
		{Key: "user_id", Value: owner},
		{Key: "expiration_time", Value: expiresAt},
	})
	return err
}

// GetByToken looks up the record whose hashed_token equals token.
// Returns (nil, nil) when the token does not match any record.
func (r *MongoTokenRepository) GetByToken(ctx context.Context, token string) (*domain.TokenRecord, error) {
	var doc tokenDocument
	err := r.coll.FindOne(ctx, bson.D{{Key: "hashed_token", Value: token}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}

	return doc.toRecord()
}

func (d tokenDocument) toRecord() (*domain.TokenRecord, error) {
	expiresAt, err := decodeInstant(d.ExpirationTime)
	if err != nil {
		return nil, fmt.Errorf("decode expiration_time: %w", err)
	}

	return &domain.TokenRecord{
		Token:     d.HashedToken,
		UserID:    decodeOwner(d.UserID),
		ExpiresAt: expiresAt,
	}, nil
}

// decodeOwner accepts an ObjectID reference or its hex string. Any other
// shape, including a missing field, yields an unowned record.
func decodeOwner(v bson.RawValue) string {
	if oid, ok := v.ObjectIDOK(); ok {
		return oid.Hex()
	}
	if s, ok := v.StringValueOK(); ok {
		return s
	}
	return ""
}

// decodeInstant accepts a BSON date or a number of milliseconds since the epoch.
// Login writers have stored both forms.
func decodeInstant(v bson.RawValue) (time.Time, error) {
	if ms, ok := v.DateTimeOK(); ok {
		return time.UnixMilli(ms).UTC(), nil
	}
	if ms, ok := v.Int64OK(); ok {
		return time.UnixMilli(ms).UTC(), nil
	}
	if ms, ok := v.Int32OK(); ok {
		return time.UnixMilli(int64(ms)).UTC(), nil
	}
	if ms, ok := v.DoubleOK(); ok {
		return time.UnixMilli(int64(ms)).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("unsupported bson type %s", v.Type)
}
