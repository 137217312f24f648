package doctor

import "go.mongodb.org/mongo-driver/bson/primitive"

// Doctor is a practitioner listed on the portal, managed by
// administrators only.
type Doctor struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Specialty string             `bson:"specialty" json:"specialty"`
	Image     string             `bson:"img,omitempty" json:"img,omitempty"`
}
