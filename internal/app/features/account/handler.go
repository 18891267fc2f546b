// internal/app/features/account/handler.go
package account

import (
	churchstore "github.com/dalemusser/churchhub/internal/app/store/churches"
	userstore "github.com/dalemusser/churchhub/internal/app/store/users"
	"github.com/dalemusser/churchhub/internal/app/system/auditlog"
	"github.com/dalemusser/churchhub/internal/app/system/auth"
	"github.com/dalemusser/churchhub/internal/app/system/metrics"
	"github.com/dalemusser/churchhub/internal/app/system/ratelimit"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves registration, login, the caller's profile, and role
// assignment.
type Handler struct {
	DB       *mongo.Database
	Users    *userstore.Store
	Churches *churchstore.Store
	Tokens   *auth.TokenManager
	Limiter  *ratelimit.Limiter
	Metrics  *metrics.Metrics
	Audit    *auditlog.Logger
	Log      *zap.Logger
}

// NewHandler constructs an account Handler. limiter, m, and audit may be nil.
func NewHandler(db *mongo.Database, tokens *auth.TokenManager, limiter *ratelimit.Limiter, m *metrics.Metrics, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Users:    userstore.New(db),
		Churches: churchstore.New(db),
		Tokens:   tokens,
		Limiter:  limiter,
		Metrics:  m,
		Audit:    audit,
		Log:      logger,
	}
}

func (h *Handler) countLogin(outcome string) {
	if h.Metrics != nil {
		h.Metrics.LoginsTotal.WithLabelValues(outcome).Inc()
	}
}
