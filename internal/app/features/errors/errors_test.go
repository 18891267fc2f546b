package errors_test

import (
	"net/http"
	"testing"

	uierrors "github.com/dalemusser/churchhub/internal/app/features/errors"
	"github.com/dalemusser/churchhub/internal/testutil"
	"go.uber.org/zap"
)

func TestNotFound(t *testing.T) {
	h := uierrors.NewHandler(zap.NewNop())

	tests := []struct {
		name  string
		serve func(http.ResponseWriter, *http.Request)
	}{
		{"not found", h.NotFound},
		{"method not allowed", h.MethodNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := testutil.NewRecorder()
			tt.serve(rec, testutil.NewRequest("GET", "/api/nowhere"))

			rec.AssertStatus(t, http.StatusNotFound)
			if msg := rec.Message(t); msg != "Route not found" {
				t.Errorf("message: got %q", msg)
			}
		})
	}
}
