package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a tracked person in the system.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName string             `bson:"firstName" json:"firstName"`
	LastName  string             `bson:"lastName" json:"lastName"`
	// Birthdate is a calendar date; the time component is always midnight.
	// Nil when the birthdate is unknown.
	Birthdate *time.Time `bson:"birthdate,omitempty" json:"birthdate,omitempty"`
	Email     string     `bson:"email" json:"email"` // Should be unique
}

// IsPersisted reports whether the user already carries a store-assigned ID.
func (u *User) IsPersisted() bool {
	return u.ID != primitive.NilObjectID
}
