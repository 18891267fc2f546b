// internal/app/features/dashboard/routes.go
package dashboard

import (
	"github.com/dalemusser/churchhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the router mounted at /api/dashboard.
func Routes(h *Handler, gate *auth.Gate) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(gate.RequireSignedIn)
		pr.Get("/", h.ServeDashboard)
		pr.Get("/stats", h.ServeStats)
	})
	return r
}
