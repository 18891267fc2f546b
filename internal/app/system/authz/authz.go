// internal/app/system/authz/authz.go
package authz

import (
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/dalemusser/churchhub/internal/app/system/auth"
	"github.com/dalemusser/churchhub/internal/app/system/httperr"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserCtx returns the caller, their ObjectID, and a found flag.
// A malformed id in context fails closed (ok=false).
func UserCtx(r *http.Request) (u *auth.SessionUser, userID primitive.ObjectID, ok bool) {
	u, ok = auth.CurrentUser(r)
	if !ok {
		return nil, primitive.NilObjectID, false
	}
	userID, err := primitive.ObjectIDFromHex(u.ID)
	if err != nil {
		return nil, primitive.NilObjectID, false
	}
	return u, userID, true
}

// Role returns the caller's role (lowercased).
func Role(u *auth.SessionUser) string {
	if u == nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(u.Role))
}

// ChurchID returns the caller's church and whether they have one.
func ChurchID(u *auth.SessionUser) (primitive.ObjectID, bool) {
	if u == nil || u.ChurchID == "" {
		return primitive.NilObjectID, false
	}
	oid, err := primitive.ObjectIDFromHex(u.ChurchID)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return oid, true
}

// SameChurch is the ownership predicate: the resource's church must equal the
// caller's. A caller without a church owns nothing.
func SameChurch(u *auth.SessionUser, church primitive.ObjectID) bool {
	mine, ok := ChurchID(u)
	return ok && !church.IsZero() && mine == church
}

// IsUser reports whether id is the caller's own id.
func IsUser(u *auth.SessionUser, id primitive.ObjectID) bool {
	return u != nil && !id.IsZero() && u.ID == id.Hex()
}

// Allow checks the role allow-list only.
func Allow(u *auth.SessionUser, a Action) error {
	if !Can(Role(u), a) {
		return deny(a, "not authorized to perform this action")
	}
	return nil
}

// Authorize checks the role allow-list, then that church is the caller's.
// Either failure returns an error wrapping httperr.ErrForbidden.
func Authorize(u *auth.SessionUser, a Action, church primitive.ObjectID) error {
	if err := Allow(u, a); err != nil {
		return err
	}
	if !SameChurch(u, church) {
		return deny(a, "not authorized for this church")
	}
	return nil
}

// AuthorizeOwner passes the resource's own author (owner), or anyone who
// passes Authorize for a on church.
func AuthorizeOwner(u *auth.SessionUser, a Action, owner, church primitive.ObjectID) error {
	if IsUser(u, owner) {
		return nil
	}
	return Authorize(u, a, church)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Denial observer                                                            |
*─────────────────────────────────────────────────────────────────────────────*/

var denyObserver atomic.Pointer[func(Action)]

// SetDenyObserver installs fn to be called on every denial. Pass nil to clear.
func SetDenyObserver(fn func(Action)) {
	if fn == nil {
		denyObserver.Store(nil)
		return
	}
	denyObserver.Store(&fn)
}

func deny(a Action, msg string) error {
	if fn := denyObserver.Load(); fn != nil {
		(*fn)(a)
	}
	return httperr.Forbidden(msg)
}
