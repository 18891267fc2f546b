// internal/domain/models/event.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event is a dated church gathering. Public events are visible across churches.
type Event struct {
	ID          primitive.ObjectID   `bson:"_id" json:"_id"`
	Title       string               `bson:"title" json:"title"`
	Description string               `bson:"description" json:"description"`
	Date        time.Time            `bson:"date" json:"date"`
	EndDate     *time.Time           `bson:"end_date,omitempty" json:"endDate,omitempty"`
	Location    string               `bson:"location" json:"location"`
	Category    string               `bson:"category,omitempty" json:"category,omitempty"`
	ImageURL    string               `bson:"image_url,omitempty" json:"imageUrl,omitempty"`
	IsPublic    bool                 `bson:"is_public" json:"isPublic"`
	ChurchID    primitive.ObjectID   `bson:"church" json:"church"`
	CreatedBy   primitive.ObjectID   `bson:"created_by" json:"createdBy"`
	Attendees   []primitive.ObjectID `bson:"attendees" json:"attendees"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
