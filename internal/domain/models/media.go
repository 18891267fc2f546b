// internal/domain/models/media.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Canonical media type identifiers.
const (
	MediaTypeVideo    = "video"
	MediaTypeAudio    = "audio"
	MediaTypeImage    = "image"
	MediaTypeDocument = "document"
	MediaTypeSermon   = "sermon"
)

// MediaTypes is the set of allowed media types.
var MediaTypes = []string{MediaTypeVideo, MediaTypeAudio, MediaTypeImage, MediaTypeDocument, MediaTypeSermon}

// Media is an uploaded or linked item (sermon recording, photo, document).
type Media struct {
	ID           primitive.ObjectID `bson:"_id" json:"_id"`
	Title        string             `bson:"title" json:"title"`
	Description  string             `bson:"description" json:"description"`
	Type         string             `bson:"type" json:"type"`
	URL          string             `bson:"url" json:"url"`
	ThumbnailURL string             `bson:"thumbnail_url,omitempty" json:"thumbnailUrl,omitempty"`
	Speaker      string             `bson:"speaker,omitempty" json:"speaker,omitempty"`
	Tags         []string           `bson:"tags" json:"tags"`
	IsPublic     bool               `bson:"is_public" json:"isPublic"`
	ChurchID     primitive.ObjectID `bson:"church" json:"church"`
	UploadedBy   primitive.ObjectID `bson:"uploaded_by" json:"uploadedBy"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// IsValidMediaType reports whether t is one of MediaTypes.
func IsValidMediaType(t string) bool {
	for _, v := range MediaTypes {
		if v == t {
			return true
		}
	}
	return false
}
