// internal/app/features/groups/group.go
package groups

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dalemusser/churchhub/internal/app/policy/grouppolicy"
	"github.com/dalemusser/churchhub/internal/app/store/audit"
	groupstore "github.com/dalemusser/churchhub/internal/app/store/groups"
	"github.com/dalemusser/churchhub/internal/app/system/authz"
	"github.com/dalemusser/churchhub/internal/app/system/httperr"
	"github.com/dalemusser/churchhub/internal/app/system/reqjson"
	"github.com/dalemusser/churchhub/internal/app/system/timeouts"
	"github.com/dalemusser/churchhub/internal/app/system/validate"
	"github.com/dalemusser/churchhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson"
)

// ServeList lists the groups of the caller's church (or ?church=) by name.
// Secret groups appear only to their members.
// GET /api/groups?church=&category=
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	u, userID, ok := authz.UserCtx(r)
	if !ok {
		httperr.Fail(w, r, h.Log, httperr.ErrUnauthenticated)
		return
	}
	scope, err := authz.ScopeList(u, query.Get(r, "church"))
	if err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}

	base := scope.Filter()
	if cat := strings.TrimSpace(query.Get(r, "category")); cat != "" {
		base = bson.M{"$and": []bson.M{base, {"category": cat}}}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	list, err := h.Groups.Find(ctx, grouppolicy.VisibleFilter(base, userID))
	if err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}
	httperr.JSON(w, http.StatusOK, list)
}

// ServeGroup returns one group. A secret group reads as missing to
// non-members.
// GET /api/groups/{id}
func (h *Handler) ServeGroup(w http.ResponseWriter, r *http.Request) {
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
	httperr.JSON(w, http.StatusOK, g)
}

// HandleCreate creates a group in the caller's church with the caller as its
// first member and admin.
// POST /api/groups
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	u, userID, ok := authz.UserCtx(r)
	if !ok {
		httperr.Fail(w, r, h.Log, httperr.ErrUnauthenticated)
		return
	}
	church, ok := authz.ChurchID(u)
	if !ok {
		httperr.Fail(w, r, h.Log, httperr.BadRequest("join a church before creating groups"))
		return
	}

	var in groupInput
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

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	g, err := h.Groups.Create(ctx, models.Group{
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
		Privacy:     in.Privacy,
		ImageURL:    in.ImageURL,
		ChurchID:    church,
		CreatedBy:   userID,
	})
	if err != nil {
		httperr.Fail(w, r, h.Log, mapStoreErr(err))
		return
	}
	httperr.JSON(w, http.StatusCreated, g)
}

// HandleUpdate applies replace-if-present changes. Group admins and the
// creator may update. Members and admins change only through their own
// endpoints.
// PUT /api/groups/{id}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	u, userID, ok := authz.UserCtx(r)
	if !ok {
		httperr.Fail(w, r, h.Log, httperr.ErrUnauthenticated)
		return
	}

	var in groupInput
	if err := reqjson.Decode(w, r, &in); err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}
	if err := validate.Struct(in); err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}

	g, ok := h.load(w, r)
	if !ok {
		return
	}
	if !grouppolicy.CanManage(u, userID, g) {
		httperr.Fail(w, r, h.Log, httperr.Forbidden("only group admins can update the group"))
		return
	}

	if in.Name != "" {
		g.Name = in.Name
	}
	if in.Description != "" {
		g.Description = in.Description
	}
	if in.Category != "" {
		g.Category = in.Category
	}
	if in.Privacy != "" {
		g.Privacy = in.Privacy
	}
	if in.ImageURL != "" {
		g.ImageURL = in.ImageURL
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	g, err := h.Groups.Save(ctx, g)
	if err != nil {
		httperr.Fail(w, r, h.Log, mapStoreErr(err))
		return
	}
	httperr.JSON(w, http.StatusOK, g)
}

// HandleDelete removes a group. Only its creator may delete it.
// DELETE /api/groups/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	u, userID, ok := authz.UserCtx(r)
	if !ok {
		httperr.Fail(w, r, h.Log, httperr.ErrUnauthenticated)
		return
	}
	g, ok := h.load(w, r)
	if !ok {
		return
	}
	if !grouppolicy.CanDelete(u, g) {
		httperr.Fail(w, r, h.Log, httperr.Forbidden("only the group creator can delete the group"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if _, err := h.Groups.Delete(ctx, g.ID); err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}
	h.Audit.AdminAction(ctx, r, audit.EventGroupDeleted, userID, g.ChurchID, g.ID, nil)
	httperr.Write(w, http.StatusOK, "Group removed")
}

// load fetches the {id} group, writing the error response on failure.
func (h *Handler) load(w http.ResponseWriter, r *http.Request) (models.Group, bool) {
	id, err := reqjson.PathID(r, "id")
	if err != nil {
		httperr.Fail(w, r, h.Log, err)
		return models.Group{}, false
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	g, err := h.Groups.GetByID(ctx, id)
	if err != nil {
		httperr.Fail(w, r, h.Log, httperr.NotFoundAs(err, "Group"))
		return models.Group{}, false
	}
	return g, true
}

func mapStoreErr(err error) error {
	switch {
	case errors.Is(err, groupstore.ErrBadPrivacy):
		return httperr.BadRequest(err.Error())
	case errors.Is(err, groupstore.ErrSoleAdmin):
		return httperr.BadRequest(err.Error())
	}
	return httperr.NotFoundAs(err, "Group")
}
