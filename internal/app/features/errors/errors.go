// internal/app/features/errors/errors.go
package errors

import (
	"net/http"

	"github.com/dalemusser/churchhub/internal/app/system/httperr"
	"go.uber.org/zap"
)

// Handler answers requests no feature router claimed.
type Handler struct {
	Log *zap.Logger
}

// NewHandler constructs an errors Handler.
func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{Log: logger}
}

// NotFound writes the generic JSON 404 for unmatched routes.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.Log.Debug("route not found", zap.String("method", r.Method), zap.String("path", r.URL.Path))
	httperr.Write(w, http.StatusNotFound, "Route not found")
}

// MethodNotAllowed answers a known path with an unsupported method. It is
// reported as a 404 like any other unmatched route.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	h.Log.Debug("method not allowed", zap.String("method", r.Method), zap.String("path", r.URL.Path))
	httperr.Write(w, http.StatusNotFound, "Route not found")
}
