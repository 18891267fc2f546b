// internal/app/features/auditlog/routes.go
package auditlog

import (
	"github.com/dalemusser/churchhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the router mounted at /api/audit.
//
// Admins see their own church's events; superadmins see every church.
func Routes(h *Handler, gate *auth.Gate) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(gate.RequireSignedIn)
		pr.Get("/", h.ServeList)
	})
	return r
}
