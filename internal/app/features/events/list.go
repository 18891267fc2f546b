// internal/app/features/events/list.go
package events

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/churchhub/internal/app/system/authz"
	"github.com/dalemusser/churchhub/internal/app/system/httperr"
	"github.com/dalemusser/churchhub/internal/app/system/paging"
	"github.com/dalemusser/churchhub/internal/app/system/reqjson"
	"github.com/dalemusser/churchhub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson"
)

// ServeList lists events in date order.
// GET /api/events?church=&category=&upcoming=true&limit=
//
// Without ?church= the list holds the caller's church events plus public
// events from every church. With ?church= it holds that church's events,
// public or not, whichever church the caller belongs to.
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
	if cat := strings.TrimSpace(query.Get(r, "category")); cat != "" {
		clauses = append(clauses, bson.M{"category": cat})
	}
	if paging.ParseFlag(r, "upcoming") {
		clauses = append(clauses, bson.M{"date": bson.M{"$gte": time.Now().UTC()}})
	}
	filter := clauses[0]
	if len(clauses) > 1 {
		filter = bson.M{"$and": clauses}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	list, err := h.Events.Find(ctx, filter, paging.ParseLimit(r))
	if err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}
	httperr.JSON(w, http.StatusOK, list)
}

// ServeEvent returns one event.
// GET /api/events/{id}
func (h *Handler) ServeEvent(w http.ResponseWriter, r *http.Request) {
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
	httperr.JSON(w, http.StatusOK, e)
}
