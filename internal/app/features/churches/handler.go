// internal/app/features/churches/handler.go
package churches

import (
	churchstore "github.com/dalemusser/churchhub/internal/app/store/churches"
	userstore "github.com/dalemusser/churchhub/internal/app/store/users"
	"github.com/dalemusser/churchhub/internal/app/system/auditlog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the church (tenant) endpoints.
type Handler struct {
	DB       *mongo.Database
	Churches *churchstore.Store
	Users    *userstore.Store
	Audit    *auditlog.Logger
	Log      *zap.Logger
}

// NewHandler constructs a churches Handler. audit may be nil.
func NewHandler(db *mongo.Database, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Churches: churchstore.New(db),
		Users:    userstore.New(db),
		Audit:    audit,
		Log:      logger,
	}
}
