package domain

import (
	"context"
	"time"
)

// User represents a registered account
type User struct {
	ID           int64     // Monotonic, assigned by the database, never reused
	Username     string    // Unique, case-sensitive
	Email        string    // Unique
	PasswordHash string    // Bcrypt hashed password (not returned in API)
	CreatedAt    time.Time // Set once at registration
}

// UserRepository defines data access for users
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
}
