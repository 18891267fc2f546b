// internal/domain/models/announcement.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Announcement priorities.
const (
	PriorityLow    = "low"
	PriorityNormal = "normal"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Announcement is a church-wide notice. Pinned announcements list first.
type Announcement struct {
	ID        primitive.ObjectID `bson:"_id" json:"_id"`
	Title     string             `bson:"title" json:"title"`
	Content   string             `bson:"content" json:"content"`
	Priority  string             `bson:"priority" json:"priority"`
	Pinned    bool               `bson:"pinned" json:"pinned"`
	ExpiresAt *time.Time         `bson:"expires_at,omitempty" json:"expiresAt,omitempty"`
	ChurchID  primitive.ObjectID `bson:"church" json:"church"`
	Author    primitive.ObjectID `bson:"author" json:"author"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// IsValidPriority reports whether p is a known priority.
func IsValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}
