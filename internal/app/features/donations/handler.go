// internal/app/features/donations/handler.go
package donations

import (
	donationstore "github.com/dalemusser/churchhub/internal/app/store/donations"
	"github.com/dalemusser/churchhub/internal/app/system/auditlog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the donation endpoints.
type Handler struct {
	DB        *mongo.Database
	Donations *donationstore.Store
	Audit     *auditlog.Logger
	Log       *zap.Logger
}

// NewHandler constructs a donations Handler. audit may be nil.
func NewHandler(db *mongo.Database, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:        db,
		Donations: donationstore.New(db),
		Audit:     audit,
		Log:       logger,
	}
}
