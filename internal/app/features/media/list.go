// internal/app/features/media/list.go
package media

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/churchhub/internal/app/system/authz"
	"github.com/dalemusser/churchhub/internal/app/system/httperr"
	"github.com/dalemusser/churchhub/internal/app/system/normalize"
	"github.com/dalemusser/churchhub/internal/app/system/paging"
	"github.com/dalemusser/churchhub/internal/app/system/reqjson"
	"github.com/dalemusser/churchhub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson"
)

// ServeList lists media newest first, scoped like events: the caller's
// church plus public items, or exactly the ?church= named.
// GET /api/media?church=&type=&tag=&limit=
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	u, _, ok := authz.UserCtx(r)
	if !ok {
		httperr.Fail(w, r, h.Log, httperr.ErrUnauthenticated)
		return
	}
	scope, err := authz.ScopeList(u, query.Get(r, "church"))
	if err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}

	clauses := []bson.M{scope.FilterWithPublic()}
	if t := strings.TrimSpace(query.Get(r, "type")); t != "" {
		clauses = append(clauses, bson.M{"type": t})
	}
	if tags := normalize.Tags([]string{query.Get(r, "tag")}); len(tags) > 0 {
		clauses = append(clauses, bson.M{"tags": tags[0]})
	}
	filter := clauses[0]
	if len(clauses) > 1 {
		filter = bson.M{"$and": clauses}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	list, err := h.Media.Find(ctx, filter, paging.ParseLimit(r))
	if err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}
	httperr.JSON(w, http.StatusOK, list)
}

// ServePublic lists public media from every church. No credential needed.
// GET /api/media/public?type=&limit=
func (h *Handler) ServePublic(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	list, err := h.Media.FindPublic(ctx, strings.TrimSpace(query.Get(r, "type")), paging.ParseLimit(r))
	if err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}
	httperr.JSON(w, http.StatusOK, list)
}

// ServeMedia returns one item.
// GET /api/media/{id}
func (h *Handler) ServeMedia(w http.ResponseWriter, r *http.Request) {
	id, err := reqjson.PathID(r, "id")
	if err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	m, err := h.Media.GetByID(ctx, id)
	if err != nil {
		httperr.Fail(w, r, h.Log, httperr.NotFoundAs(err, "Media"))
		return
	}
	httperr.JSON(w, http.StatusOK, m)
}
