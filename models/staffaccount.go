package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StaffAccount is a login record backing the auth middleware. It is not a
// clinical entity; the domain core never reads it.
type StaffAccount struct {
	ID           primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Email        string             `json:"email" bson:"email"`
	Name         string             `json:"name" bson:"name"`
	PasswordHash string             `json:"-" bson:"passwordHash"`
	Roles        []string           `json:"roles" bson:"roles"`
	Active       bool               `json:"active" bson:"active"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt" bson:"updatedAt"`
}
