// internal/app/features/account/register.go
package account

import (
	"context"
	"errors"
	"net/http"

	userstore "github.com/dalemusser/churchhub/internal/app/store/users"
	"github.com/dalemusser/churchhub/internal/app/system/httperr"
	"github.com/dalemusser/churchhub/internal/app/system/reqjson"
	"github.com/dalemusser/churchhub/internal/app/system/timeouts"
	"github.com/dalemusser/churchhub/internal/app/system/validate"
	"github.com/dalemusser/churchhub/internal/domain/models"
	"go.uber.org/zap"
)

// HandleRegister creates a user and returns it with a bearer token.
// POST /api/auth/register
//
// The caller chooses their own role and church. A supplied church must exist;
// the new user is added to its member list.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var in registerInput
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

	church, err := reqjson.OptionalID("church", in.Church)
	if err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}
	if church != nil {
		if _, err := h.Churches.GetByID(ctx, *church); err != nil {
			httperr.Fail(w, r, h.Log, httperr.NotFoundAs(err, "Church"))
			return
		}
	}

	u, err := h.Users.Create(ctx, models.User{
		Name:         in.Name,
		Email:        in.Email,
		Role:         in.Role,
		ChurchID:     church,
		Denomination: in.Denomination,
		Phone:        in.Phone,
	}, in.Password)
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicateEmail) || errors.Is(err, userstore.ErrBadRole) {
			err = httperr.BadRequest(err.Error())
		}
		httperr.Fail(w, r, h.Log, err)
		return
	}

	if church != nil {
		if _, err := h.Churches.AddMember(ctx, *church, u.ID); err != nil {
			h.Log.Warn("register: add church member failed",
				zap.Error(err),
				zap.String("user_id", u.ID.Hex()),
				zap.String("church", church.Hex()))
		}
	}

	token, err := h.Tokens.Issue(u.ID.Hex())
	if err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}

	h.Audit.UserRegistered(ctx, r, u.ID, u.ChurchID, u.Role)
	httperr.JSON(w, http.StatusCreated, authResponse{User: u, Token: token})
}
