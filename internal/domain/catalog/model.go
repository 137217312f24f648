package catalog

import "go.mongodb.org/mongo-driver/bson/primitive"

// Treatment is one bookable service: a name, a price, and the full
// slot template for a generic day. Slots are a fixed catalog; they are
// filtered against bookings per date at query time, never mutated.
type Treatment struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name  string             `bson:"name" json:"name"`
	Price float64            `bson:"price" json:"price"`
	Slots []string           `bson:"slots" json:"slots"`
}
