// internal/app/features/events/edit.go
package events

import (
	"context"
	"net/http"
	"time"

	"github.com/dalemusser/churchhub/internal/app/system/authz"
	"github.com/dalemusser/churchhub/internal/app/system/httperr"
	"github.com/dalemusser/churchhub/internal/app/system/reqjson"
	"github.com/dalemusser/churchhub/internal/app/system/timeouts"
	"github.com/dalemusser/churchhub/internal/app/system/validate"
	"github.com/dalemusser/churchhub/internal/domain/models"
)

// HandleCreate creates an event in the caller's church. church and createdBy
// come from the caller, never from the body.
// POST /api/events
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	u, userID, ok := authz.UserCtx(r)
	if !ok {
		httperr.Fail(w, r, h.Log, httperr.ErrUnauthenticated)
		return
	}
	church, ok := authz.ChurchID(u)
	if !ok {
		httperr.Fail(w, r, h.Log, httperr.BadRequest("join a church before creating events"))
		return
	}

	var in createInput
	if err := reqjson.Decode(w, r, &in); err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}
	if err := validate.Struct(in); err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}

	var end *time.Time
	if in.EndDate != nil {
		t := in.EndDate.UTC()
		end = &t
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	e, err := h.Events.Create(ctx, models.Event{
		Title:       in.Title,
		Description: in.Description,
		Date:        in.Date.UTC(),
		EndDate:     end,
		Location:    in.Location,
		Category:    in.Category,
		ImageURL:    in.ImageURL,
		IsPublic:    in.IsPublic,
		ChurchID:    church,
		CreatedBy:   userID,
	})
	if err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}
	httperr.JSON(w, http.StatusCreated, e)
}

// HandleUpdate applies replace-if-present changes. The creator, or an
// event.manage role in the event's church, may update. church is not
// changeable.
// PUT /api/events/{id}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
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

	var in updateInput
	if err := reqjson.Decode(w, r, &in); err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}
	if err := validate.Struct(in); err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	e, err := h.Events.GetByID(ctx, id)
	if err != nil {
		httperr.Fail(w, r, h.Log, httperr.NotFoundAs(err, "Event"))
		return
	}
	if err := authz.AuthorizeOwner(u, authz.EventManage, e.CreatedBy, e.ChurchID); err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}

	if in.Title != "" {
		e.Title = in.Title
	}
	if in.Description != "" {
		e.Description = in.Description
	}
	if in.Date != nil {
		e.Date = in.Date.UTC()
	}
	if in.EndDate != nil {
		end := in.EndDate.UTC()
		e.EndDate = &end
	}
	if in.Location != "" {
		e.Location = in.Location
	}
	if in.Category != "" {
		e.Category = in.Category
	}
	if in.ImageURL != "" {
		e.ImageURL = in.ImageURL
	}
	if in.IsPublic != nil {
		e.IsPublic = *in.IsPublic
	}

	e, err = h.Events.Save(ctx, e)
	if err != nil {
		httperr.Fail(w, r, h.Log, httperr.NotFoundAs(err, "Event"))
		return
	}
	httperr.JSON(w, http.StatusOK, e)
}

// HandleDelete removes an event under the same rules as HandleUpdate.
// DELETE /api/events/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
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

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	e, err := h.Events.GetByID(ctx, id)
	if err != nil {
		httperr.Fail(w, r, h.Log, httperr.NotFoundAs(err, "Event"))
		return
	}
	if err := authz.AuthorizeOwner(u, authz.EventManage, e.CreatedBy, e.ChurchID); err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}
	if _, err := h.Events.Delete(ctx, e.ID); err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}
	httperr.Write(w, http.StatusOK, "Event removed")
}
