// internal/app/features/groups/membership.go
package groups

import (
	"context"
	"net/http"

	"github.com/dalemusser/churchhub/internal/app/policy/grouppolicy"
	"github.com/dalemusser/churchhub/internal/app/system/authz"
	"github.com/dalemusser/churchhub/internal/app/system/httperr"
	"github.com/dalemusser/churchhub/internal/app/system/reqjson"
	"github.com/dalemusser/churchhub/internal/app/system/timeouts"
	"github.com/dalemusser/churchhub/internal/app/system/validate"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HandleJoin adds the caller to a public group. Joining twice is a no-op.
// POST /api/groups/{id}/join
func (h *Handler) HandleJoin(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := authz.UserCtx(r)
	if !ok {
		httperr.Fail(w, r, h.Log, httperr.ErrUnauthenticated)
		return
	}
	g, ok := h.load(w, r)
	if !ok {
		return
	}
	if !grouppolicy.CanView(userID, g) {
		httperr.Fail(w, r, h.Log, httperr.NotFound("Group"))
		return
	}
	if !grouppolicy.CanJoin(g) {
		httperr.Fail(w, r, h.Log, httperr.Forbidden("this group is invite-only"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	g, err := h.Groups.AddMember(ctx, g.ID, userID)
	if err != nil {
		httperr.Fail(w, r, h.Log, mapStoreErr(err))
		return
	}
	httperr.JSON(w, http.StatusOK, g)
}

// HandleLeave removes the caller from a group. The sole admin cannot leave.
// Leaving a group one is not in is a no-op.
// POST /api/groups/{id}/leave
func (h *Handler) HandleLeave(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := authz.UserCtx(r)
	if !ok {
		httperr.Fail(w, r, h.Log, httperr.ErrUnauthenticated)
		return
	}
	id, err := reqjson.PathID(r, "id")
	if err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	g, err := h.Groups.Leave(ctx, id, userID)
	if err != nil {
		httperr.Fail(w, r, h.Log, mapStoreErr(err))
		return
	}
	httperr.JSON(w, http.StatusOK, g)
}

// HandleAddAdmin makes userId an admin (and member) of the group.
// POST /api/groups/{id}/admins
func (h *Handler) HandleAddAdmin(w http.ResponseWriter, r *http.Request) {
	h.changeAdmins(w, r, true)
}

// HandleRemoveAdmin drops userId from the group's admins, keeping their
// membership.
// DELETE /api/groups/{id}/admins
func (h *Handler) HandleRemoveAdmin(w http.ResponseWriter, r *http.Request) {
	h.changeAdmins(w, r, false)
}

func (h *Handler) changeAdmins(w http.ResponseWriter, r *http.Request, add bool) {
	u, userID, ok := authz.UserCtx(r)
	if !ok {
		httperr.Fail(w, r, h.Log, httperr.ErrUnauthenticated)
		return
	}

	var in adminInput
	if err := reqjson.Decode(w, r, &in); err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}
	if err := validate.Struct(in); err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}
	target, _ := primitive.ObjectIDFromHex(in.UserID)

	g, ok := h.load(w, r)
	if !ok {
		return
	}
	if !grouppolicy.CanManage(u, userID, g) {
		httperr.Fail(w, r, h.Log, httperr.Forbidden("only group admins can manage admins"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if add {
		if _, err := h.Users.GetByID(ctx, target); err != nil {
			httperr.Fail(w, r, h.Log, httperr.NotFoundAs(err, "User"))
			return
		}
		g, err := h.Groups.AddAdmin(ctx, g.ID, target)
		if err != nil {
			httperr.Fail(w, r, h.Log, mapStoreErr(err))
			return
		}
		httperr.JSON(w, http.StatusOK, g)
		return
	}

	g, err := h.Groups.RemoveAdmin(ctx, g.ID, target)
	if err != nil {
		httperr.Fail(w, r, h.Log, mapStoreErr(err))
		return
	}
	httperr.JSON(w, http.StatusOK, g)
}
