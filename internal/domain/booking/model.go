package booking

import "go.mongodb.org/mongo-driver/bson/primitive"

// Booking is one patient's reservation of one slot of one treatment on
// one date. Treatment references the catalog by name and Patient is
// the subject email; both are value references, not foreign keys.
type Booking struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Treatment       string             `bson:"treatment" json:"treatment"`
	AppointmentDate string             `bson:"appointmentDate" json:"appointmentDate"`
	Slot            string             `bson:"slot" json:"slot"`
	Patient         string             `bson:"patient" json:"patient"`
	Phone           string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Price           float64            `bson:"price" json:"price"`
	Paid            bool               `bson:"paid" json:"paid"`
	TransactionID   string             `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
}

// AdmissionResult is the outcome of an admission attempt. A rejected
// admission is not an error: Booking carries the conflicting record so
// the caller can tell the patient what they already hold.
type AdmissionResult struct {
	Accepted bool
	Booking  *Booking
}
