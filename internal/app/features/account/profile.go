// internal/app/features/account/profile.go
package account

import (
	"context"
	"errors"
	"net/http"

	userstore "github.com/dalemusser/churchhub/internal/app/store/users"
	"github.com/dalemusser/churchhub/internal/app/system/authz"
	"github.com/dalemusser/churchhub/internal/app/system/httperr"
	"github.com/dalemusser/churchhub/internal/app/system/reqjson"
	"github.com/dalemusser/churchhub/internal/app/system/timeouts"
	"github.com/dalemusser/churchhub/internal/app/system/validate"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ServeProfile returns the caller's own user record.
// GET /api/auth/profile
func (h *Handler) ServeProfile(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := authz.UserCtx(r)
	if !ok {
		httperr.Fail(w, r, h.Log, httperr.ErrUnauthenticated)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		httperr.Fail(w, r, h.Log, httperr.NotFoundAs(err, "User"))
		return
	}
	httperr.JSON(w, http.StatusOK, u)
}

// HandleUpdateProfile changes the caller's own record. Supplied non-empty
// fields replace stored ones; role cannot be changed here. Moving to another
// church updates both churches' member lists.
// PUT /api/auth/profile
func (h *Handler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := authz.UserCtx(r)
	if !ok {
		httperr.Fail(w, r, h.Log, httperr.ErrUnauthenticated)
		return
	}

	var in profileInput
	if err := reqjson.Decode(w, r, &in); err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}
	if err := validate.Struct(in); err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	u, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		httperr.Fail(w, r, h.Log, httperr.NotFoundAs(err, "User"))
		return
	}

	newChurch, err := reqjson.OptionalID("church", in.Church)
	if err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}
	oldChurch := u.ChurchID
	moved := newChurch != nil && (oldChurch == nil || *oldChurch != *newChurch)
	if moved {
		if _, err := h.Churches.GetByID(ctx, *newChurch); err != nil {
			httperr.Fail(w, r, h.Log, httperr.NotFoundAs(err, "Church"))
			return
		}
		u.ChurchID = newChurch
	}

	if in.Name != "" {
		u.Name = in.Name
	}
	if in.Email != "" {
		u.Email = in.Email
	}
	if in.Denomination != "" {
		u.Denomination = in.Denomination
	}
	if in.Phone != "" {
		u.Phone = in.Phone
	}
	if in.Avatar != "" {
		u.Avatar = in.Avatar
	}
	passwordChanged := in.Password != ""
	if passwordChanged {
		hash, err := userstore.HashPassword(in.Password)
		if err != nil {
			httperr.Fail(w, r, h.Log, err)
			return
		}
		u.PasswordHash = hash
	}

	u, err = h.Users.Save(ctx, u)
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicateEmail) {
			err = httperr.BadRequest(err.Error())
		}
		httperr.Fail(w, r, h.Log, err)
		return
	}

	if moved {
		if oldChurch != nil {
			if _, err := h.Churches.RemoveMember(ctx, *oldChurch, u.ID); err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
				h.Log.Warn("profile: remove old church member failed", zap.Error(err), zap.String("user_id", u.ID.Hex()))
			}
		}
		if _, err := h.Churches.AddMember(ctx, *newChurch, u.ID); err != nil {
			h.Log.Warn("profile: add church member failed", zap.Error(err), zap.String("user_id", u.ID.Hex()))
		}
	}

	h.Audit.ProfileUpdated(ctx, r, u.ID, u.ChurchID, passwordChanged)
	httperr.JSON(w, http.StatusOK, u)
}
