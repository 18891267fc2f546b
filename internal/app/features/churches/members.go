// internal/app/features/churches/members.go
package churches

import (
	"context"
	"net/http"

	"github.com/dalemusser/churchhub/internal/app/store/audit"
	"github.com/dalemusser/churchhub/internal/app/system/authz"
	"github.com/dalemusser/churchhub/internal/app/system/httperr"
	"github.com/dalemusser/churchhub/internal/app/system/reqjson"
	"github.com/dalemusser/churchhub/internal/app/system/timeouts"
	"github.com/dalemusser/churchhub/internal/app/system/validate"
	"github.com/dalemusser/churchhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type memberInput struct {
	UserID string `json:"userId" validate:"omitempty,mongodb"`
}

type membersResponse struct {
	// Members are the users on the church's member list.
	Members []models.User `json:"members"`
	// Users are the accounts whose own church field names this church.
	Users []models.User `json:"users"`
}

// ServeMembers lists a church's people. Only callers belonging to the church
// may read it.
// GET /api/church/{id}/members
//
// The member list and the users' church field are kept separately and can
// disagree, so both are returned.
func (h *Handler) ServeMembers(w http.ResponseWriter, r *http.Request) {
	u, _, ok := authz.UserCtx(r)
	if !ok {
		httperr.Fail(w, r, h.Log, httperr.ErrUnauthenticated)
		return
	}
	id, err := reqjson.PathID(r, "id")
	if err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "church members")
	defer cancel()

	c, err := h.Churches.GetByID(ctx, id)
	if err != nil {
		httperr.Fail(w, r, h.Log, httperr.NotFoundAs(err, "Church"))
		return
	}
	if !authz.SameChurch(u, c.ID) {
		httperr.Fail(w, r, h.Log, httperr.Forbidden("not authorized for this church"))
		return
	}

	var out membersResponse
	if out.Members, err = h.Users.GetMany(ctx, c.Members); err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}
	if out.Users, err = h.Users.ListByChurch(ctx, c.ID); err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}
	httperr.JSON(w, http.StatusOK, out)
}

// HandleAddMember adds a user to the church's member list.
// POST /api/church/{id}/members
//
// With no userId the caller adds themself. Adding anyone else requires
// church.members in the same church. Adding an existing member is a no-op.
// Only the member list changes; the user's own church field is untouched.
func (h *Handler) HandleAddMember(w http.ResponseWriter, r *http.Request) {
	h.changeMembers(w, r, true)
}

// HandleRemoveMember removes a user from the church's member list under the
// same rules as HandleAddMember. Removing a non-member is a no-op.
// DELETE /api/church/{id}/members
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

	c, err := h.Churches.GetByID(ctx, id)
	if err != nil {
		httperr.Fail(w, r, h.Log, httperr.NotFoundAs(err, "Church"))
		return
	}
	if target != userID {
		if err := authz.Authorize(u, authz.ChurchMembers, c.ID); err != nil {
			httperr.Fail(w, r, h.Log, err)
			return
		}
		if _, err := h.Users.GetByID(ctx, target); err != nil {
			httperr.Fail(w, r, h.Log, httperr.NotFoundAs(err, "User"))
			return
		}
	}

	event := audit.EventChurchMemberAdded
	if add {
		c, err = h.Churches.AddMember(ctx, c.ID, target)
	} else {
		event = audit.EventChurchMemberRemoved
		c, err = h.Churches.RemoveMember(ctx, c.ID, target)
	}
	if err != nil {
		httperr.Fail(w, r, h.Log, httperr.NotFoundAs(err, "Church"))
		return
	}

	if target != userID {
		h.Audit.AdminAction(ctx, r, event, userID, c.ID, c.ID, &target)
	}
	httperr.JSON(w, http.StatusOK, c)
}
