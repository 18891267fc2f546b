// internal/app/features/announcements/announcements.go
package announcements

import (
	"context"
	"net/http"
	"time"

	announcementstore "github.com/dalemusser/churchhub/internal/app/store/announcements"
	"github.com/dalemusser/churchhub/internal/app/system/authz"
	"github.com/dalemusser/churchhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/churchhub/internal/app/system/httperr"
	"github.com/dalemusser/churchhub/internal/app/system/paging"
	"github.com/dalemusser/churchhub/internal/app/system/reqjson"
	"github.com/dalemusser/churchhub/internal/app/system/timeouts"
	"github.com/dalemusser/churchhub/internal/app/system/validate"
	"github.com/dalemusser/churchhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
)

// List returns a church's announcements, pinned first, then newest.
// Expired announcements are hidden unless includeExpired=true.
// GET /api/announcements?church=&includeExpired=&limit=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
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
	if scope.ChurchID.IsZero() {
		httperr.JSON(w, http.StatusOK, []models.Announcement{})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	list, err := h.Store.ListByChurch(ctx, scope.ChurchID, announcementstore.ListOptions{
		IncludeExpired: paging.ParseFlag(r, "includeExpired"),
		Limit:          paging.ParseLimit(r),
	})
	if err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}
	httperr.JSON(w, http.StatusOK, list)
}

// Show returns one announcement.
// GET /api/announcements/{id}
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := reqjson.PathID(r, "id")
	if err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	a, err := h.Store.GetByID(ctx, id)
	if err != nil {
		httperr.Fail(w, r, h.Log, httperr.NotFoundAs(err, "Announcement"))
		return
	}
	httperr.JSON(w, http.StatusOK, a)
}

// Create posts an announcement to the caller's church. The title is reduced
// to plain text and the content to safe HTML.
// POST /api/announcements
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	u, userID, ok := authz.UserCtx(r)
	if !ok {
		httperr.Fail(w, r, h.Log, httperr.ErrUnauthenticated)
		return
	}
	church, _ := authz.ChurchID(u)
	if err := authz.Authorize(u, authz.AnnouncementCreate, church); err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}

	var in createInput
	if err := reqjson.Decode(w, r, &in); err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}
	in.Title = htmlsanitize.StripTags(in.Title)
	in.Content = htmlsanitize.Sanitize(in.Content)
	if err := validate.Struct(in); err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	a, err := h.Store.Create(ctx, models.Announcement{
		Title:     in.Title,
		Content:   in.Content,
		Priority:  in.Priority,
		Pinned:    in.Pinned,
		ExpiresAt: utcPtr(in.ExpiresAt),
		ChurchID:  church,
		Author:    userID,
	})
	if err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}
	httperr.JSON(w, http.StatusCreated, a)
}

// Update applies replace-if-present changes. Announcers of the same church
// may update; authorship alone grants nothing.
// PUT /api/announcements/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
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

	a, err := h.Store.GetByID(ctx, id)
	if err != nil {
		httperr.Fail(w, r, h.Log, httperr.NotFoundAs(err, "Announcement"))
		return
	}
	if err := authz.Authorize(u, authz.AnnouncementUpdate, a.ChurchID); err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}

	if t := htmlsanitize.StripTags(in.Title); t != "" {
		a.Title = t
	}
	if c := htmlsanitize.Sanitize(in.Content); c != "" {
		a.Content = c
	}
	if in.Priority != "" {
		a.Priority = in.Priority
	}
	if in.Pinned != nil {
		a.Pinned = *in.Pinned
	}
	if in.ExpiresAt != nil {
		a.ExpiresAt = utcPtr(in.ExpiresAt)
	}

	a, err = h.Store.Save(ctx, a)
	if err != nil {
		httperr.Fail(w, r, h.Log, httperr.NotFoundAs(err, "Announcement"))
		return
	}
	httperr.JSON(w, http.StatusOK, a)
}

// Delete removes an announcement.
// DELETE /api/announcements/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
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

	a, err := h.Store.GetByID(ctx, id)
	if err != nil {
		httperr.Fail(w, r, h.Log, httperr.NotFoundAs(err, "Announcement"))
		return
	}
	if err := authz.Authorize(u, authz.AnnouncementDelete, a.ChurchID); err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}
	if _, err := h.Store.Delete(ctx, a.ID); err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}
	httperr.Write(w, http.StatusOK, "Announcement removed")
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
