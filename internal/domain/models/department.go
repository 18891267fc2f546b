// internal/domain/models/department.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Department is a ministry unit of a church (ushering, media, music).
type Department struct {
	ID          primitive.ObjectID   `bson:"_id" json:"_id"`
	Name        string               `bson:"name" json:"name"`
	NameCI      string               `bson:"name_ci" json:"-"`
	Description string               `bson:"description" json:"description"`
	Head        *primitive.ObjectID  `bson:"head,omitempty" json:"head,omitempty"`
	IsActive    bool                 `bson:"is_active" json:"isActive"`
	ChurchID    primitive.ObjectID   `bson:"church" json:"church"`
	CreatedBy   primitive.ObjectID   `bson:"created_by" json:"createdBy"`
	Members     []primitive.ObjectID `bson:"members" json:"members"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// HasMember reports whether id is in Members.
func (d Department) HasMember(id primitive.ObjectID) bool {
	return containsID(d.Members, id)
}
