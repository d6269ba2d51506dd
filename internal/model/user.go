package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an account. IsAdmin gates the template and question-collection
// authoring endpoints; everything else only needs a valid session.
type User struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Email     string             `json:"email" bson:"email"`
	Password  string             `json:"-" bson:"password"`
	Phone     string             `json:"phone" bson:"phone"`
	IsAdmin   bool               `json:"isAdmin" bson:"isAdmin"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}
