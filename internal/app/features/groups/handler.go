// internal/app/features/groups/handler.go
package groups

import (
	groupstore "github.com/dalemusser/churchhub/internal/app/store/groups"
	userstore "github.com/dalemusser/churchhub/internal/app/store/users"
	"github.com/dalemusser/churchhub/internal/app/system/auditlog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the group endpoints.
type Handler struct {
	DB     *mongo.Database
	Groups *groupstore.Store
	Users  *userstore.Store
	Audit  *auditlog.Logger
	Log    *zap.Logger
}

// NewHandler constructs a groups Handler. audit may be nil.
func NewHandler(db *mongo.Database, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		Groups: groupstore.New(db),
		Users:  userstore.New(db),
		Audit:  audit,
		Log:    logger,
	}
}
