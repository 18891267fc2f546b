// internal/app/features/account/role.go
package account

import (
	"context"
	"net/http"

	"github.com/dalemusser/churchhub/internal/app/policy/memberpolicy"
	"github.com/dalemusser/churchhub/internal/app/system/authz"
	"github.com/dalemusser/churchhub/internal/app/system/httperr"
	"github.com/dalemusser/churchhub/internal/app/system/normalize"
	"github.com/dalemusser/churchhub/internal/app/system/reqjson"
	"github.com/dalemusser/churchhub/internal/app/system/timeouts"
	"github.com/dalemusser/churchhub/internal/app/system/validate"
	"github.com/dalemusser/churchhub/internal/domain/models"
)

// HandleAssignRole sets another user's role.
// PUT /api/users/{id}/role
func (h *Handler) HandleAssignRole(w http.ResponseWriter, r *http.Request) {
	u, actorID, ok := authz.UserCtx(r)
	if !ok {
		httperr.Fail(w, r, h.Log, httperr.ErrUnauthenticated)
		return
	}
	targetID, err := reqjson.PathID(r, "id")
	if err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}

	var in roleInput
	if err := reqjson.Decode(w, r, &in); err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}
	if err := validate.Struct(in); err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}
	role := normalize.Role(in.Role)
	if !models.IsValidRole(role) {
		httperr.Fail(w, r, h.Log, httperr.BadRequest("invalid role"))
		return
	}

	if err := authz.Allow(u, authz.UserAssignRole); err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	target, err := h.Users.GetByID(ctx, targetID)
	if err != nil {
		httperr.Fail(w, r, h.Log, httperr.NotFoundAs(err, "User"))
		return
	}
	if !memberpolicy.CanAssignRole(u, target, role) {
		httperr.Fail(w, r, h.Log, httperr.Forbidden("not authorized to assign this role"))
		return
	}

	if err := h.Users.SetRole(ctx, target.ID, role); err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}

	h.Audit.RoleChanged(ctx, r, actorID, target.ID, target.ChurchID, target.Role, role)
	target.Role = role
	httperr.JSON(w, http.StatusOK, target)
}
