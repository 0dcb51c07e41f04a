// Package v1 provides the session, profile and post business logic for API version 1.
//
// Error Handling:
// This package defines sentinel errors for the conditions callers branch on.
// They are wrapped with context using fmt.Errorf("%w") when returned from
// business logic methods. Any other error is a server error.
//
// Error Checking (in handlers):
//
//	switch {
//	case errors.Is(err, logicv1.ErrInvalidPostID):
//	    // 400 Invalid post ID format
//	case errors.Is(err, logicv1.ErrPostNotFound):
//	    // 404 Post not found
//	default:
//	    // 500 with err.Error() as diagnostics
//	}
package v1

import "errors"

// Validation errors.
var (
	// ErrInvalidPostID indicates the identifier is not a 24-character hex object id.
	// HTTP Status: 400 Bad Request
	ErrInvalidPostID = errors.New("invalid post id format")

	// ErrInvalidInput indicates a request body failed validation.
	// HTTP Status: 400 Bad Request
	ErrInvalidInput = errors.New("invalid input")
)

// Not-found errors.
var (
	// ErrUserNotFound indicates no user has the requested username.
	// HTTP Status: 404 Not Found
	ErrUserNotFound = errors.New("user not found")

	// ErrPostNotFound indicates no post has the requested id.
	// HTTP Status: 404 Not Found
	ErrPostNotFound = errors.New("post not found")
)

// Authentication errors. They are reported as a Decision reason by the
// session gate and never returned from it.
var (
	// ErrTokenMissing indicates the request carried no token or an unknown one.
	// HTTP Status: 401 Unauthorized
	ErrTokenMissing = errors.New("token missing or unknown")

	// ErrTokenExpired indicates the token's expiration instant has passed.
	// HTTP Status: 401 Unauthorized
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenUnbound indicates an admitted token has no owning user for an
	// operation that needs one.
	// HTTP Status: 401 Unauthorized
	ErrTokenUnbound = errors.New("token not bound to a user")
)
