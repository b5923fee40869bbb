package domain

import "errors"

// Error taxonomy shared by services and repositories. Handlers map these to
// HTTP status codes with errors.Is; anything unrecognized becomes a generic
// 500 with details kept in the server logs.
var (
	// ErrValidation marks a missing or empty required field (400)
	ErrValidation = errors.New("validation failed")

	// ErrConflict marks a duplicate username or email (409)
	ErrConflict = errors.New("already exists")

	// ErrAuthentication marks bad credentials or a missing/invalid/expired
	// session (401)
	ErrAuthentication = errors.New("not authenticated")

	// ErrNotFound marks an absent user or resource (404)
	ErrNotFound = errors.New("not found")

	// ErrDecode marks a malformed image payload (400)
	ErrDecode = errors.New("malformed payload")
)
