package booking

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/docport/docport/internal/platform/db"
)

type MongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(database *mongo.Database) *MongoRepository {
	return &MongoRepository{col: database.Collection(db.BookingsCollection)}
}

func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "treatment", Value: 1},
			{Key: "appointmentDate", Value: 1},
			{Key: "patient", Value: 1},
		},
		Options: options.Index().SetUnique(true).SetName("dedup_treatment_date_patient"),
	})
	if err != nil {
		return fmt.Errorf("ensure booking indexes: %w", err)
	}
	return nil
}

func (r *MongoRepository) Insert(ctx context.Context, b *Booking) error {
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	if _, err := r.col.InsertOne(ctx, b); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

func (r *MongoRepository) FindByKey(ctx context.Context, treatment, date, patient string) (*Booking, error) {
	query := bson.M{
		"treatment":       treatment,
		"appointmentDate": date,
		"patient":         patient,
	}

	var b Booking
	err := r.col.FindOne(ctx, query).Decode(&b)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find booking by key: %w", err)
	}
	return &b, nil
}

func (r *MongoRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*Booking, error) {
	var b Booking
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&b)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get booking %s: %w", id.Hex(), err)
	}
	return &b, nil
}

func (r *MongoRepository) ListByPatient(ctx context.Context, email string) ([]*Booking, error) {
	cursor, err := r.col.Find(ctx, bson.M{"patient": email})
	if err != nil {
		return nil, fmt.Errorf("list bookings for %s: %w", email, err)
	}
	defer cursor.Close(ctx)

	var bookings []*Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("decode bookings: %w", err)
	}
	return bookings, nil
}

func (r *MongoRepository) ListByDate(ctx context.Context, date string) ([]*Booking, error) {
	cursor, err := r.col.Find(ctx, bson.M{"appointmentDate": date})
	if err != nil {
		return nil, fmt.Errorf("list bookings on %s: %w", date, err)
	}
	defer cursor.Close(ctx)

	var bookings []*Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("decode bookings: %w", err)
	}
	return bookings, nil
}

func (r *MongoRepository) MarkPaid(ctx context.Context, id primitive.ObjectID, transactionID string) error {
	update := bson.M{"$set": bson.M{
		"paid":          true,
		"transactionId": transactionID,
	}}

	result, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("mark booking %s paid: %w", id.Hex(), err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
