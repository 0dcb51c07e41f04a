package domain

import "time"

// TokenRecord is a stored association between an opaque session token and
// its absolute expiration instant. UserID is empty for tokens that were not
// bound to an account at login.
type TokenRecord struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
}

// User is an account as stored by the account subsystem.
// PasswordHash never leaves the repository layer in a response.
type User struct {
	ID             string
	Username       string
	Email          string
	PasswordHash   string
	FirstName      string
	LastName       string
	Title          string
	Bio            string
	Avatar         string
	AccountType    string
	FollowersCount int
	FollowingCount int
	CreatedAt      time.Time
}

// Post is a full post document.
type Post struct {
	ID            string    `json:"_id"`
	UserID        string    `json:"user_id"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	Image         string    `json:"image"`
	Tags          []string  `json:"tags"`
	LikesCount    int       `json:"likes_count"`
	CommentsCount int       `json:"comments_count"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// PostSummary is the projection of a post embedded in a profile.
type PostSummary struct {
	ID            string    `json:"_id"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	Image         string    `json:"image"`
	LikesCount    int       `json:"likes_count"`
	CommentsCount int       `json:"comments_count"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ProfileView joins a user's public attributes with their posts, newest first.
type ProfileView struct {
	ID             string        `json:"_id"`
	Username       string        `json:"username"`
	Email          string        `json:"email"`
	FirstName      string        `json:"firstname"`
	LastName       string        `json:"lastname"`
	Title          string        `json:"title"`
	Bio            string        `json:"bio"`
	Avatar         string        `json:"avatar"`
	AccountType    string        `json:"accountType"`
	FollowersCount int           `json:"followers_count"`
	FollowingCount int           `json:"following_count"`
	Posts          []PostSummary `json:"posts"`
}

// NewPost carries the caller-supplied fields of a post to be created.
type NewPost struct {
	UserID  string
	Title   string
	Content string
	Image   string
	Tags    []string
}
