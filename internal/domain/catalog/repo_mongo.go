package catalog

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/docport/docport/internal/platform/db"
)

type MongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(database *mongo.Database) *MongoRepository {
	return &MongoRepository{col: database.Collection(db.ServicesCollection)}
}

func (r *MongoRepository) List(ctx context.Context) ([]*Treatment, error) {
	cursor, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list treatments: %w", err)
	}
	defer cursor.Close(ctx)

	var treatments []*Treatment
	if err := cursor.All(ctx, &treatments); err != nil {
		return nil, fmt.Errorf("decode treatments: %w", err)
	}
	return treatments, nil
}

func (r *MongoRepository) GetByName(ctx context.Context, name string) (*Treatment, error) {
	var t Treatment
	err := r.col.FindOne(ctx, bson.M{"name": name}).Decode(&t)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get treatment %q: %w", name, err)
	}
	return &t, nil
}

func (r *MongoRepository) Upsert(ctx context.Context, t *Treatment) error {
	filter := bson.M{"name": t.Name}
	update := bson.M{"$set": bson.M{
		"name":  t.Name,
		"price": t.Price,
		"slots": t.Slots,
	}}
	opts := options.Update().SetUpsert(true)

	if _, err := r.col.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("upsert treatment %q: %w", t.Name, err)
	}
	return nil
}
