package doctor

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
	return &MongoRepository{col: database.Collection(db.DoctorsCollection)}
}

func (r *MongoRepository) List(ctx context.Context) ([]*Doctor, error) {
	cursor, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list doctors: %w", err)
	}
	defer cursor.Close(ctx)

	var doctors []*Doctor
	if err := cursor.All(ctx, &doctors); err != nil {
		return nil, fmt.Errorf("decode doctors: %w", err)
	}
	return doctors, nil
}

func (r *MongoRepository) Create(ctx context.Context, d *Doctor) error {
	if d.ID.IsZero() {
		d.ID = primitive.NewObjectID()
	}
	if _, err := r.col.InsertOne(ctx, d); err != nil {
		return fmt.Errorf("insert doctor: %w", err)
	}
	return nil
}

func (r *MongoRepository) DeleteByEmail(ctx context.Context, email string) error {
	result, err := r.col.DeleteOne(ctx, bson.M{"email": email})
	if err != nil {
		return fmt.Errorf("delete doctor %s: %w", email, err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
