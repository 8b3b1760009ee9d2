package domain

import (
	"context"
	"time"
)

// User represents a borrower. Users are created lazily the first time an
// unrecognized email requests a loan.
type User struct {
	ID        int64
	Email     string
	CreatedAt time.Time
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]User, error)
}
