package payment

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment is one settled card payment. The collection is append-only;
// a record is removed only by settlement compensation when the paired
// booking update failed.
type Payment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	TransactionID string             `bson:"transactionId" json:"transactionId"`
	Amount        float64            `bson:"amount" json:"amount"`
	BookingID     primitive.ObjectID `bson:"bookingId" json:"bookingId"`
	Patient       string             `bson:"patient" json:"patient"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}
