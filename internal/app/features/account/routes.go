// internal/app/features/account/routes.go
package account

import (
	"github.com/dalemusser/churchhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the router mounted at /api/auth.
func Routes(h *Handler, gate *auth.Gate) chi.Router {
	r := chi.NewRouter()

	// Public
	r.Post("/register", h.HandleRegister)
	r.Post("/login", h.HandleLogin)

	r.Group(func(pr chi.Router) {
		pr.Use(gate.RequireSignedIn)
		pr.Get("/profile", h.ServeProfile)
		pr.Put("/profile", h.HandleUpdateProfile)
	})
	return r
}

// UserRoutes returns the router mounted at /api/users.
func UserRoutes(h *Handler, gate *auth.Gate) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(gate.RequireSignedIn)
		pr.Put("/{id}/role", h.HandleAssignRole)
	})
	return r
}
