// internal/app/features/departments/members.go
package departments

import (
	"context"
	"net/http"

	"github.com/dalemusser/churchhub/internal/app/system/authz"
	"github.com/dalemusser/churchhub/internal/app/system/httperr"
	"github.com/dalemusser/churchhub/internal/app/system/reqjson"
	"github.com/dalemusser/churchhub/internal/app/system/timeouts"
	"github.com/dalemusser/churchhub/internal/app/system/validate"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HandleAddMember adds a user to the department. With no userId the caller
// adds themself; adding anyone else needs department.members in the
// department's church. Adding an existing member is a no-op.
// POST /api/departments/{id}/members
func (h *Handler) HandleAddMember(w http.ResponseWriter, r *http.Request) {
	h.changeMembers(w, r, true)
}

// HandleRemoveMember removes a user under the same rules as HandleAddMember.
// DELETE /api/departments/{id}/members
func (h *Handler) HandleRemoveMember(w http.ResponseWriter, r *http.Request) {
	h.changeMembers(w, r, false)
}

func (h *Handler) changeMembers(w http.ResponseWriter, r *http.Request, add bool) {
	u, userID, ok := authz.UserCtx(r)
	if !ok {
		httperr.Fail(w, r, h.Log, httperr.ErrUnauthenticated)
		return
	}
	id, err := reqjson.PathID(r, "id")
	if err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}

	var in memberInput
	if err := reqjson.Decode(w, r, &in); err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}
	if err := validate.Struct(in); err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}
	target := userID
	if in.UserID != "" {
		target, _ = primitive.ObjectIDFromHex(in.UserID)
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	d, err := h.Departments.GetByID(ctx, id)
	if err != nil {
		httperr.Fail(w, r, h.Log, httperr.NotFoundAs(err, "Department"))
		return
	}
	if target != userID {
		if err := authz.Authorize(u, authz.DepartmentMembers, d.ChurchID); err != nil {
			httperr.Fail(w, r, h.Log, err)
			return
		}
		if _, err := h.Users.GetByID(ctx, target); err != nil {
			httperr.Fail(w, r, h.Log, httperr.NotFoundAs(err, "User"))
			return
		}
	}

	if add {
		d, err = h.Departments.AddMember(ctx, d.ID, target)
	} else {
		d, err = h.Departments.RemoveMember(ctx, d.ID, target)
	}
	if err != nil {
		httperr.Fail(w, r, h.Log, httperr.NotFoundAs(err, "Department"))
		return
	}
	httperr.JSON(w, http.StatusOK, d)
}
