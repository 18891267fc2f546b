// internal/app/system/authz/scope.go
package authz

import (
	"strings"

	"github.com/dalemusser/churchhub/internal/app/system/auth"
	"github.com/dalemusser/churchhub/internal/app/system/httperr"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ListScope describes which church a list read covers.
type ListScope struct {
	// ChurchID is the church whose documents are listed. Zero when neither the
	// request nor the caller names one.
	ChurchID primitive.ObjectID
	// Explicit is true when the request supplied the church filter.
	Explicit bool
}

// ScopeList resolves the church a list endpoint reads from. An explicit
// ?church= value wins over the caller's own church and is not checked
// against it; any authenticated caller may list another church this way.
func ScopeList(u *auth.SessionUser, requested string) (ListScope, error) {
	requested = strings.TrimSpace(requested)
	if requested != "" {
		oid, err := primitive.ObjectIDFromHex(requested)
		if err != nil {
			return ListScope{}, httperr.BadRequest("invalid church id")
		}
		return ListScope{ChurchID: oid, Explicit: true}, nil
	}
	mine, _ := ChurchID(u)
	return ListScope{ChurchID: mine}, nil
}

// Filter returns the Mongo filter for a tenant-scoped collection.
// A scope with no church matches nothing.
func (s ListScope) Filter() bson.M {
	if s.ChurchID.IsZero() {
		return bson.M{"_id": bson.M{"$exists": false}}
	}
	return bson.M{"church": s.ChurchID}
}

// FilterWithPublic is Filter for collections carrying an is_public flag.
// The default (non-explicit) scope also matches every public document from
// any church; an explicit church filter returns that church only.
func (s ListScope) FilterWithPublic() bson.M {
	if s.Explicit {
		return s.Filter()
	}
	if s.ChurchID.IsZero() {
		return bson.M{"is_public": true}
	}
	return bson.M{"$or": []bson.M{
		{"church": s.ChurchID},
		{"is_public": true},
	}}
}

// DonationScope returns the filter for donation reads: church-wide for roles
// holding DonationViewAll, otherwise the caller's own donations.
func DonationScope(u *auth.SessionUser, userID primitive.ObjectID) bson.M {
	if church, ok := ChurchID(u); ok && Can(Role(u), DonationViewAll) {
		return bson.M{"church": church}
	}
	return bson.M{"donor": userID}
}

// CanViewDonation reports whether the caller may read a single donation.
func CanViewDonation(u *auth.SessionUser, donor, church primitive.ObjectID) bool {
	if IsUser(u, donor) {
		return true
	}
	return Can(Role(u), DonationViewAll) && SameChurch(u, church)
}
