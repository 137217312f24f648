package booking

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrNotFound is returned when no booking matches the given id or key.
	ErrNotFound = errors.New("booking not found")
	// ErrDuplicate is the store-level rejection signal for an insert
	// that collides with the (treatment, date, patient) unique index.
	ErrDuplicate = errors.New("duplicate booking")
)

type Repository interface {
	// Insert stores a new booking. It must return ErrDuplicate when a
	// booking with the same (treatment, appointmentDate, patient)
	// already exists; admission relies on this instead of a racy
	// check-then-insert.
	Insert(ctx context.Context, b *Booking) error
	FindByKey(ctx context.Context, treatment, date, patient string) (*Booking, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*Booking, error)
	ListByPatient(ctx context.Context, email string) ([]*Booking, error)
	ListByDate(ctx context.Context, date string) ([]*Booking, error)
	MarkPaid(ctx context.Context, id primitive.ObjectID, transactionID string) error
	// EnsureIndexes creates the unique (treatment, appointmentDate,
	// patient) index backing the dedup invariant.
	EnsureIndexes(ctx context.Context) error
}
