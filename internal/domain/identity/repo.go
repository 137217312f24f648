package identity

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no user exists for the given email.
var ErrNotFound = errors.New("user not found")

type Repository interface {
	// Upsert creates or updates the profile for u.Email. The role
	// field is deliberately untouched; SetRole is the only mutation
	// path for it.
	Upsert(ctx context.Context, u *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]*User, error)
	SetRole(ctx context.Context, email, role string) error
	// EnsureIndexes creates the unique index on email.
	EnsureIndexes(ctx context.Context) error
}
