// internal/app/features/announcements/handler.go
package announcements

import (
	announcementstore "github.com/dalemusser/churchhub/internal/app/store/announcements"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves church announcements.
type Handler struct {
	DB    *mongo.Database
	Store *announcementstore.Store
	Log   *zap.Logger
}

// NewHandler creates a new announcements handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:    db,
		Store: announcementstore.New(db),
		Log:   logger,
	}
}
