// internal/domain/models/group.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Group privacy values.
const (
	PrivacyPublic  = "public"
	PrivacyPrivate = "private"
	PrivacySecret  = "secret"
)

// Group is a small community inside a church (bible study, choir, youth).
//
// NOTE:
//   - Admins is a subset of Members.
//   - A group keeps at least one admin when members leave; removing an admin
//     through the admins endpoint does not enforce that.
type Group struct {
	ID          primitive.ObjectID   `bson:"_id" json:"_id"`
	Name        string               `bson:"name" json:"name"`
	NameCI      string               `bson:"name_ci" json:"-"`
	Description string               `bson:"description" json:"description"`
	Category    string               `bson:"category,omitempty" json:"category,omitempty"`
	Privacy     string               `bson:"privacy" json:"privacy"`
	ImageURL    string               `bson:"image_url,omitempty" json:"imageUrl,omitempty"`
	ChurchID    primitive.ObjectID   `bson:"church" json:"church"`
	CreatedBy   primitive.ObjectID   `bson:"created_by" json:"createdBy"`
	Members     []primitive.ObjectID `bson:"members" json:"members"`
	Admins      []primitive.ObjectID `bson:"admins" json:"admins"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// IsValidPrivacy reports whether p is a known privacy value.
func IsValidPrivacy(p string) bool {
	return p == PrivacyPublic || p == PrivacyPrivate || p == PrivacySecret
}

// HasMember reports whether id is in Members.
func (g Group) HasMember(id primitive.ObjectID) bool {
	return containsID(g.Members, id)
}

// HasAdmin reports whether id is in Admins.
func (g Group) HasAdmin(id primitive.ObjectID) bool {
	return containsID(g.Admins, id)
}

func containsID(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
