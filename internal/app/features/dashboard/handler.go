// internal/app/features/dashboard/handler.go
package dashboard

import (
	announcementstore "github.com/dalemusser/churchhub/internal/app/store/announcements"
	churchstore "github.com/dalemusser/churchhub/internal/app/store/churches"
	donationstore "github.com/dalemusser/churchhub/internal/app/store/donations"
	eventstore "github.com/dalemusser/churchhub/internal/app/store/events"
	mediastore "github.com/dalemusser/churchhub/internal/app/store/media"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	DB            *mongo.Database
	Churches      *churchstore.Store
	Events        *eventstore.Store
	Announcements *announcementstore.Store
	Donations     *donationstore.Store
	Media         *mediastore.Store
	Log           *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:            db,
		Churches:      churchstore.New(db),
		Events:        eventstore.New(db),
		Announcements: announcementstore.New(db),
		Donations:     donationstore.New(db),
		Media:         mediastore.New(db),
		Log:           logger,
	}
}
