// internal/app/bootstrap/routes.go
package bootstrap

import (
	"context"
	"net/http"
	"time"

	accountfeature "github.com/dalemusser/churchhub/internal/app/features/account"
	announcementsfeature "github.com/dalemusser/churchhub/internal/app/features/announcements"
	auditlogfeature "github.com/dalemusser/churchhub/internal/app/features/auditlog"
	churchesfeature "github.com/dalemusser/churchhub/internal/app/features/churches"
	dashboardfeature "github.com/dalemusser/churchhub/internal/app/features/dashboard"
	departmentsfeature "github.com/dalemusser/churchhub/internal/app/features/departments"
	donationsfeature "github.com/dalemusser/churchhub/internal/app/features/donations"
	errorsfeature "github.com/dalemusser/churchhub/internal/app/features/errors"
	eventsfeature "github.com/dalemusser/churchhub/internal/app/features/events"
	groupsfeature "github.com/dalemusser/churchhub/internal/app/features/groups"
	healthfeature "github.com/dalemusser/churchhub/internal/app/features/health"
	mediafeature "github.com/dalemusser/churchhub/internal/app/features/media"
	auditstore "github.com/dalemusser/churchhub/internal/app/store/audit"
	userstore "github.com/dalemusser/churchhub/internal/app/store/users"
	"github.com/dalemusser/churchhub/internal/app/system/auditlog"
	"github.com/dalemusser/churchhub/internal/app/system/auth"
	"github.com/dalemusser/churchhub/internal/app/system/authz"
	"github.com/dalemusser/churchhub/internal/app/system/metrics"
	"github.com/dalemusser/churchhub/internal/app/system/ratelimit"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// sweepInterval is how often expired login-limiter windows are dropped.
const sweepInterval = time.Minute

// stopBackground cancels goroutines started by BuildHandler. Shutdown calls it.
var stopBackground context.CancelFunc = func() {}

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// the Startup hook have completed. Every API route lives under /api; the
// bearer gate is applied per route group by each feature router.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.MongoDatabase

	m := metrics.New(nil)
	authz.SetDenyObserver(func(a authz.Action) {
		m.AuthzDenials.WithLabelValues(string(a)).Inc()
	})

	tokens := auth.NewTokenManager(appCfg.JWTSecret, appCfg.JWTExpiry)
	gate := auth.NewGate(tokens, userstore.NewFetcher(db), logger)
	gate.OnReject = func(reason string) {
		m.CredentialRejections.WithLabelValues(reason).Inc()
	}

	audit := auditlog.New(auditstore.New(db), logger, auditlog.Config{
		Auth:  appCfg.AuditLogAuth,
		Admin: appCfg.AuditLogAdmin,
	})

	limiter := ratelimit.New(appCfg.LoginRateLimit, time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	stopBackground = cancel
	go limiter.Run(ctx, sweepInterval)

	errorsHandler := errorsfeature.NewHandler(logger)

	r := chi.NewRouter()
	if appCfg.TrustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: appCfg.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders: []string{"Content-Length"},
		MaxAge:         300,
	}))
	r.Use(m.Middleware)
	r.NotFound(errorsHandler.NotFound)
	r.MethodNotAllowed(errorsHandler.MethodNotAllowed)

	// Health check and metrics for load balancers and scrapers
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))
	r.Method(http.MethodGet, "/metrics", m.Handler())

	r.Route("/api", func(api chi.Router) {
		api.NotFound(errorsHandler.NotFound)
		api.MethodNotAllowed(errorsHandler.MethodNotAllowed)

		// Accounts and credentials
		accountHandler := accountfeature.NewHandler(db, tokens, limiter, m, audit, logger)
		api.Mount("/auth", accountfeature.Routes(accountHandler, gate))
		api.Mount("/users", accountfeature.UserRoutes(accountHandler, gate))

		// Tenants
		churchesHandler := churchesfeature.NewHandler(db, audit, logger)
		api.Mount("/church", churchesfeature.Routes(churchesHandler, gate))

		// Church-scoped resources
		eventsHandler := eventsfeature.NewHandler(db, logger)
		api.Mount("/events", eventsfeature.Routes(eventsHandler, gate))

		donationsHandler := donationsfeature.NewHandler(db, audit, logger)
		api.Mount("/donations", donationsfeature.Routes(donationsHandler, gate))

		mediaHandler := mediafeature.NewHandler(db, logger)
		api.Mount("/media", mediafeature.Routes(mediaHandler, gate))

		groupsHandler := groupsfeature.NewHandler(db, audit, logger)
		api.Mount("/groups", groupsfeature.Routes(groupsHandler, gate))

		announcementsHandler := announcementsfeature.NewHandler(db, logger)
		api.Mount("/announcements", announcementsfeature.Routes(announcementsHandler, gate))

		departmentsHandler := departmentsfeature.NewHandler(db, audit, logger)
		api.Mount("/departments", departmentsfeature.Routes(departmentsHandler, gate))

		// Audit trail
		auditHandler := auditlogfeature.NewHandler(db, logger)
		api.Mount("/audit", auditlogfeature.Routes(auditHandler, gate))

		// Dashboards
		dashboardHandler := dashboardfeature.NewHandler(db, logger)
		api.Mount("/dashboard", dashboardfeature.Routes(dashboardHandler, gate))
	})

	return r, nil
}
