package payment

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/docport/docport/internal/platform/db"
)

type MongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(database *mongo.Database) *MongoRepository {
	return &MongoRepository{col: database.Collection(db.PaymentsCollection)}
}

func (r *MongoRepository) Record(ctx context.Context, p *Payment) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if _, err := r.col.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("record payment: %w", err)
	}
	return nil
}

func (r *MongoRepository) Remove(ctx context.Context, id primitive.ObjectID) error {
	if _, err := r.col.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("remove payment %s: %w", id.Hex(), err)
	}
	return nil
}

func (r *MongoRepository) ListByPatient(ctx context.Context, email string) ([]*Payment, error) {
	cursor, err := r.col.Find(ctx, bson.M{"patient": email})
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer cursor.Close(ctx)

	var payments []*Payment
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, fmt.Errorf("decode payments: %w", err)
	}
	return payments, nil
}
