// internal/app/features/auditlog/list.go
package auditlog

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/churchhub/internal/app/store/audit"
	"github.com/dalemusser/churchhub/internal/app/system/authz"
	"github.com/dalemusser/churchhub/internal/app/system/httperr"
	"github.com/dalemusser/churchhub/internal/app/system/paging"
	"github.com/dalemusser/churchhub/internal/app/system/reqjson"
	"github.com/dalemusser/churchhub/internal/app/system/timeouts"
	"github.com/dalemusser/churchhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
)

type listResponse struct {
	Events []audit.Event `json:"events"`
	Total  int64         `json:"total"`
}

// ServeList returns audit events newest first.
// GET /api/audit?church=&category=&type=&user=&since=&limit=
//
// A superadmin without ?church= reads every church. Anyone else reads only
// their own church, and naming another church is rejected.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	u, _, ok := authz.UserCtx(r)
	if !ok {
		httperr.Fail(w, r, h.Log, httperr.ErrUnauthenticated)
		return
	}

	requested, err := reqjson.OptionalID("church", query.Get(r, "church"))
	if err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}

	filter := audit.QueryFilter{
		Category:  strings.TrimSpace(query.Get(r, "category")),
		EventType: strings.TrimSpace(query.Get(r, "type")),
		Limit:     paging.ParseLimit(r),
	}

	if authz.Role(u) == models.RoleSuperAdmin {
		if err := authz.Allow(u, authz.AuditView); err != nil {
			httperr.Fail(w, r, h.Log, err)
			return
		}
		filter.ChurchID = requested
	} else {
		church, _ := authz.ChurchID(u)
		if requested != nil {
			church = *requested
		}
		if err := authz.Authorize(u, authz.AuditView, church); err != nil {
			httperr.Fail(w, r, h.Log, err)
			return
		}
		filter.ChurchID = &church
	}

	if filter.UserID, err = reqjson.OptionalID("user", query.Get(r, "user")); err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}
	if s := strings.TrimSpace(query.Get(r, "since")); s != "" {
		since, err := time.Parse(time.RFC3339, s)
		if err != nil {
			httperr.Fail(w, r, h.Log, httperr.BadRequest("since must be an RFC 3339 timestamp"))
			return
		}
		since = since.UTC()
		filter.Since = &since
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	events, err := h.Audit.Query(ctx, filter)
	if err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}
	total, err := h.Audit.Count(ctx, filter)
	if err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}
	httperr.JSON(w, http.StatusOK, listResponse{Events: events, Total: total})
}
