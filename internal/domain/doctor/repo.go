package doctor

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no doctor matches the given email.
var ErrNotFound = errors.New("doctor not found")

type Repository interface {
	List(ctx context.Context) ([]*Doctor, error)
	Create(ctx context.Context, d *Doctor) error
	DeleteByEmail(ctx context.Context, email string) error
}
