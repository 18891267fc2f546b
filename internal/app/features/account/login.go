// internal/app/features/account/login.go
package account

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/churchhub/internal/app/store/audit"
	userstore "github.com/dalemusser/churchhub/internal/app/store/users"
	"github.com/dalemusser/churchhub/internal/app/system/httperr"
	"github.com/dalemusser/churchhub/internal/app/system/ratelimit"
	"github.com/dalemusser/churchhub/internal/app/system/reqjson"
	"github.com/dalemusser/churchhub/internal/app/system/timeouts"
	"github.com/dalemusser/churchhub/internal/app/system/validate"
	"go.mongodb.org/mongo-driver/mongo"
)

const invalidCredentials = "Invalid email or password"

// HandleLogin exchanges email and password for a bearer token.
// POST /api/auth/login
//
// Unknown email and wrong password get the same 401. Attempts are limited
// per client IP when a limiter is configured.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var in loginInput
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

	ip := ratelimit.ClientIP(r)
	if !h.Limiter.Allow(ip) {
		h.countLogin("limited")
		h.Audit.LoginFailed(ctx, r, audit.EventLoginFailedRateLimit, nil, in.Email, "rate limit exceeded")
		httperr.Write(w, http.StatusTooManyRequests, "Too many login attempts, please try again later")
		return
	}

	u, err := h.Users.GetByEmail(ctx, in.Email)
	if errors.Is(err, mongo.ErrNoDocuments) {
		h.countLogin("invalid")
		h.Audit.LoginFailed(ctx, r, audit.EventLoginFailedUserNotFound, nil, in.Email, "user not found")
		httperr.Write(w, http.StatusUnauthorized, invalidCredentials)
		return
	}
	if err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}
	if !userstore.CheckPassword(u, in.Password) {
		h.countLogin("invalid")
		h.Audit.LoginFailed(ctx, r, audit.EventLoginFailedWrongPassword, &u.ID, in.Email, "wrong password")
		httperr.Write(w, http.StatusUnauthorized, invalidCredentials)
		return
	}

	token, err := h.Tokens.Issue(u.ID.Hex())
	if err != nil {
		httperr.Fail(w, r, h.Log, err)
		return
	}

	h.Limiter.Reset(ip)
	h.countLogin("success")
	h.Audit.LoginSuccess(ctx, r, u.ID, u.ChurchID)
	httperr.JSON(w, http.StatusOK, authResponse{User: u, Token: token})
}
