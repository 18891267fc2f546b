// internal/app/features/events/rsvp.go
package events

import (
	"context"
	"net/http"

	"github.com/dalemusser/churchhub/internal/app/system/authz"
	"github.com/dalemusser/churchhub/internal/app/system/httperr"
	"github.com/dalemusser/churchhub/internal/app/system/reqjson"
	"github.com/dalemusser/churchhub/internal/app/system/timeouts"
)

// HandleRSVP adds the caller to the event's attendees, or removes them when
// the body is {"attending": false}. Both directions are idempotent.
// POST /api/events/{id}/rsvp
func (h *Handler) HandleRSVP(w http.ResponseWriter, r *http.Request) {
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

	var in rsvpInput
	if err := reqjson.Decode(w, r, &in); err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if in.Attending != nil && !*in.Attending {
		e, err := h.Events.RemoveAttendee(ctx, id, userID)
		if err != nil {
			httperr.Fail(w, r, h.Log, httperr.NotFoundAs(err, "Event"))
			return
		}
		httperr.JSON(w, http.StatusOK, e)
		return
	}

	e, err := h.Events.AddAttendee(ctx, id, userID)
	if err != nil {
		httperr.Fail(w, r, h.Log, httperr.NotFoundAs(err, "Event"))
		return
	}
	httperr.JSON(w, http.StatusOK, e)
}
