// internal/app/features/churches/church.go
package churches

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/churchhub/internal/app/store/audit"
	"github.com/dalemusser/churchhub/internal/app/system/authz"
	"github.com/dalemusser/churchhub/internal/app/system/httperr"
	"github.com/dalemusser/churchhub/internal/app/system/reqjson"
	"github.com/dalemusser/churchhub/internal/app/system/timeouts"
	"github.com/dalemusser/churchhub/internal/app/system/validate"
	"github.com/dalemusser/churchhub/internal/domain/models"
)

type churchInput struct {
	Name         string `json:"name" validate:"omitempty,max=200"`
	Denomination string `json:"denomination" validate:"omitempty,max=200"`
	Location     string `json:"location" validate:"omitempty,max=500"`
	Description  string `json:"description"`
	Pastor       string `json:"pastor" validate:"omitempty,mongodb"`
}

// ServeList lists churches, optionally for one denomination.
// GET /api/church?denomination=
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	list, err := h.Churches.Find(ctx, strings.TrimSpace(r.URL.Query().Get("denomination")))
	if err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}
	httperr.JSON(w, http.StatusOK, list)
}

// HandleCreate creates a church. Any signed-in user may create one; the
// caller is recorded as its creator.
// POST /api/church
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := authz.UserCtx(r)
	if !ok {
		httperr.Fail(w, r, h.Log, httperr.ErrUnauthenticated)
		return
	}

	var in churchInput
	if err := reqjson.Decode(w, r, &in); err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}
	if err := validate.Struct(in); err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}
	if err := validate.Var("name", in.Name, "required"); err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}
	pastor, err := reqjson.OptionalID("pastor", in.Pastor)
	if err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	c, err := h.Churches.Create(ctx, models.Church{
		Name:         in.Name,
		Denomination: in.Denomination,
		Location:     in.Location,
		Description:  in.Description,
		Pastor:       pastor,
		CreatedBy:    userID,
	})
	if err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}
	httperr.JSON(w, http.StatusCreated, c)
}

// ServeChurch returns one church.
// GET /api/church/{id}
func (h *Handler) ServeChurch(w http.ResponseWriter, r *http.Request) {
	id, err := reqjson.PathID(r, "id")
	if err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	c, err := h.Churches.GetByID(ctx, id)
	if err != nil {
		httperr.Fail(w, r, h.Log, httperr.NotFoundAs(err, "Church"))
		return
	}
	httperr.JSON(w, http.StatusOK, c)
}

// HandleUpdate replaces the supplied non-empty fields of the caller's own
// church. Requires church.update.
// PUT /api/church/{id}
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

	var in churchInput
	if err := reqjson.Decode(w, r, &in); err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}
	if err := validate.Struct(in); err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}
	pastor, err := reqjson.OptionalID("pastor", in.Pastor)
	if err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	c, err := h.Churches.GetByID(ctx, id)
	if err != nil {
		httperr.Fail(w, r, h.Log, httperr.NotFoundAs(err, "Church"))
		return
	}
	if err := authz.Authorize(u, authz.ChurchUpdate, c.ID); err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}

	if in.Name != "" {
		c.Name = in.Name
	}
	if in.Denomination != "" {
		c.Denomination = in.Denomination
	}
	if in.Location != "" {
		c.Location = in.Location
	}
	if in.Description != "" {
		c.Description = in.Description
	}
	if pastor != nil {
		c.Pastor = pastor
	}

	c, err = h.Churches.Save(ctx, c)
	if err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}
	httperr.JSON(w, http.StatusOK, c)
}

// HandleDelete removes the caller's own church. Requires church.delete.
// Users and resources referencing the church are left as they are.
// DELETE /api/church/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
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

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	c, err := h.Churches.GetByID(ctx, id)
	if err != nil {
		httperr.Fail(w, r, h.Log, httperr.NotFoundAs(err, "Church"))
		return
	}
	if err := authz.Authorize(u, authz.ChurchDelete, c.ID); err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}
	if _, err := h.Churches.Delete(ctx, c.ID); err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}

	h.Audit.AdminAction(ctx, r, audit.EventChurchDeleted, userID, c.ID, c.ID, nil)
	httperr.Write(w, http.StatusOK, "Church removed")
}
