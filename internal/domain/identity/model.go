package identity

import "go.mongodb.org/mongo-driver/bson/primitive"

// RoleAdmin is the only elevated role; everyone else is a plain user.
const RoleAdmin = "admin"

// User is one portal account, keyed by email. Role elevation is a
// privileged mutation and never travels with a profile upsert.
type User struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name  string             `bson:"name" json:"name"`
	Email string             `bson:"email" json:"email"`
	Role  string             `bson:"role,omitempty" json:"role,omitempty"`
}

// IsAdmin reports whether the user holds the administrator role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
