package domain

import "go.mongodb.org/mongo-driver/v2/bson"

// IsValidID reports whether id is a 24-character hexadecimal object identifier.
// Every storage backend keys users and posts with this format.
func IsValidID(id string) bool {
	_, err := bson.ObjectIDFromHex(id)
	return err == nil
}

// NewID returns a fresh object identifier in hex form.
func NewID() string {
	return bson.NewObjectID().Hex()
}
