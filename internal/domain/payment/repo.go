package payment

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Repository interface {
	Record(ctx context.Context, p *Payment) error
	Remove(ctx context.Context, id primitive.ObjectID) error
	ListByPatient(ctx context.Context, email string) ([]*Payment, error)
}
