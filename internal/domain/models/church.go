// internal/domain/models/church.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Church is the tenant: the unit of data isolation.
// Deleting a church does not touch the documents that reference it.
type Church struct {
	ID           primitive.ObjectID   `bson:"_id" json:"_id"`
	Name         string               `bson:"name" json:"name"`
	NameCI       string               `bson:"name_ci" json:"-"`
	Denomination string               `bson:"denomination" json:"denomination"`
	Location     string               `bson:"location" json:"location"`
	Description  string               `bson:"description,omitempty" json:"description,omitempty"`
	Pastor       *primitive.ObjectID  `bson:"pastor,omitempty" json:"pastor,omitempty"`
	Members      []primitive.ObjectID `bson:"members" json:"members"`
	CreatedBy    primitive.ObjectID   `bson:"created_by" json:"createdBy"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
