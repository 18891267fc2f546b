// internal/app/features/media/handler.go
package media

import (
	mediastore "github.com/dalemusser/churchhub/internal/app/store/media"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the media library endpoints.
type Handler struct {
	DB    *mongo.Database
	Media *mediastore.Store
	Log   *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:    db,
		Media: mediastore.New(db),
		Log:   logger,
	}
}
