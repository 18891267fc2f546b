// internal/app/features/events/handler.go
package events

import (
	eventstore "github.com/dalemusser/churchhub/internal/app/store/events"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the event endpoints.
type Handler struct {
	DB     *mongo.Database
	Events *eventstore.Store
	Log    *zap.Logger
}

// NewHandler constructs an events Handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		Events: eventstore.New(db),
		Log:    logger,
	}
}
