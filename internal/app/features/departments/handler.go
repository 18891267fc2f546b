// internal/app/features/departments/handler.go
package departments

import (
	departmentstore "github.com/dalemusser/churchhub/internal/app/store/departments"
	userstore "github.com/dalemusser/churchhub/internal/app/store/users"
	"github.com/dalemusser/churchhub/internal/app/system/auditlog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the department endpoints.
type Handler struct {
	DB          *mongo.Database
	Departments *departmentstore.Store
	Users       *userstore.Store
	Audit       *auditlog.Logger
	Log         *zap.Logger
}

// NewHandler constructs a departments Handler. audit may be nil.
func NewHandler(db *mongo.Database, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:          db,
		Departments: departmentstore.New(db),
		Users:       userstore.New(db),
		Audit:       audit,
		Log:         logger,
	}
}
