// internal/app/features/auditlog/handler.go
package auditlog

import (
	"github.com/dalemusser/churchhub/internal/app/store/audit"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the audit log read endpoint.
type Handler struct {
	DB    *mongo.Database
	Audit *audit.Store
	Log   *zap.Logger
}

// NewHandler constructs an Audit Log feature handler bound to
// the given Mongo database and logger.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:    db,
		Audit: audit.New(db),
		Log:   logger,
	}
}
