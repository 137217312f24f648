package catalog

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no treatment matches the given name.
var ErrNotFound = errors.New("treatment not found")

type Repository interface {
	List(ctx context.Context) ([]*Treatment, error)
	GetByName(ctx context.Context, name string) (*Treatment, error)
	Upsert(ctx context.Context, t *Treatment) error
}
