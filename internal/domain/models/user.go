// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a registered person. A user belongs to at most one church at a time.
//
// NOTE:
//   - PasswordHash is never serialized to JSON.
//   - ChurchID is a weak reference; the church may have been deleted.
type User struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	Name         string              `bson:"name" json:"name"`
	NameCI       string              `bson:"name_ci" json:"-"` // lowercase, diacritics-stripped
	Email        string              `bson:"email" json:"email"`
	PasswordHash string              `bson:"password" json:"-"`
	Role         string              `bson:"role" json:"role"`
	ChurchID     *primitive.ObjectID `bson:"church,omitempty" json:"church,omitempty"`
	Denomination string              `bson:"denomination,omitempty" json:"denomination,omitempty"`
	Phone        string              `bson:"phone,omitempty" json:"phone,omitempty"`
	Avatar       string              `bson:"avatar,omitempty" json:"avatar,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
