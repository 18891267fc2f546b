// internal/app/features/media/edit.go
package media

import (
	"context"
	"net/http"

	"github.com/dalemusser/churchhub/internal/app/system/authz"
	"github.com/dalemusser/churchhub/internal/app/system/httperr"
	"github.com/dalemusser/churchhub/internal/app/system/reqjson"
	"github.com/dalemusser/churchhub/internal/app/system/timeouts"
	"github.com/dalemusser/churchhub/internal/app/system/validate"
	"github.com/dalemusser/churchhub/internal/domain/models"
)

// HandleCreate adds an item to the caller's church library.
// POST /api/media
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	u, userID, ok := authz.UserCtx(r)
	if !ok {
		httperr.Fail(w, r, h.Log, httperr.ErrUnauthenticated)
		return
	}
	church, ok := authz.ChurchID(u)
	if !ok {
		httperr.Fail(w, r, h.Log, httperr.BadRequest("join a church before uploading media"))
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

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	m, err := h.Media.Create(ctx, models.Media{
		Title:        in.Title,
		Description:  in.Description,
		Type:         in.Type,
		URL:          in.URL,
		ThumbnailURL: in.ThumbnailURL,
		Speaker:      in.Speaker,
		Tags:         in.Tags,
		IsPublic:     in.IsPublic,
		ChurchID:     church,
		UploadedBy:   userID,
	})
	if err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}
	httperr.JSON(w, http.StatusCreated, m)
}

// HandleUpdate applies replace-if-present changes. The uploader, or church
// leadership, may update.
// PUT /api/media/{id}
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

	m, err := h.Media.GetByID(ctx, id)
	if err != nil {
		httperr.Fail(w, r, h.Log, httperr.NotFoundAs(err, "Media"))
		return
	}
	if err := authz.AuthorizeOwner(u, authz.MediaManage, m.UploadedBy, m.ChurchID); err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}

	if in.Title != "" {
		m.Title = in.Title
	}
	if in.Description != "" {
		m.Description = in.Description
	}
	if in.Type != "" {
		m.Type = in.Type
	}
	if in.URL != "" {
		m.URL = in.URL
	}
	if in.ThumbnailURL != "" {
		m.ThumbnailURL = in.ThumbnailURL
	}
	if in.Speaker != "" {
		m.Speaker = in.Speaker
	}
	if in.Tags != nil {
		m.Tags = *in.Tags
	}
	if in.IsPublic != nil {
		m.IsPublic = *in.IsPublic
	}

	m, err = h.Media.Save(ctx, m)
	if err != nil {
		httperr.Fail(w, r, h.Log, httperr.NotFoundAs(err, "Media"))
		return
	}
	httperr.JSON(w, http.StatusOK, m)
}

// HandleDelete removes an item under the same rules as HandleUpdate.
// DELETE /api/media/{id}
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

	m, err := h.Media.GetByID(ctx, id)
	if err != nil {
		httperr.Fail(w, r, h.Log, httperr.NotFoundAs(err, "Media"))
		return
	}
	if err := authz.AuthorizeOwner(u, authz.MediaManage, m.UploadedBy, m.ChurchID); err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}
	if _, err := h.Media.Delete(ctx, m.ID); err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}
	httperr.Write(w, http.StatusOK, "Media removed")
}
