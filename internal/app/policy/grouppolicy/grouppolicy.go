// Package grouppolicy decides who may see and change a group.
//
// Authorization rules:
//   - Secret groups are visible only to their members
//   - Public and private groups are visible to anyone in the same church,
//     and to anyone through an explicit church filter
//   - Only public groups can be joined directly
//   - Group admins and the creator can edit the group and manage its admins
//   - Only the creator can delete the group, whatever their role
package grouppolicy

import (
	"github.com/dalemusser/churchhub/internal/app/system/auth"
	"github.com/dalemusser/churchhub/internal/app/system/authz"
	"github.com/dalemusser/churchhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CanView reports whether the caller may read g.
func CanView(userID primitive.ObjectID, g models.Group) bool {
	if g.Privacy == models.PrivacySecret {
		return g.HasMember(userID)
	}
	return true
}

// CanJoin reports whether the caller may add themself to g.
func CanJoin(g models.Group) bool {
	return g.Privacy == models.PrivacyPublic || g.Privacy == ""
}

// CanManage reports whether the caller may edit g or change its admins.
func CanManage(u *auth.SessionUser, userID primitive.ObjectID, g models.Group) bool {
	return g.HasAdmin(userID) || authz.IsUser(u, g.CreatedBy)
}

// CanDelete reports whether the caller may delete g.
func CanDelete(u *auth.SessionUser, g models.Group) bool {
	return authz.IsUser(u, g.CreatedBy)
}

// VisibleFilter narrows a group list filter so secret groups appear only to
// their members.
func VisibleFilter(base bson.M, userID primitive.ObjectID) bson.M {
	return bson.M{"$and": []bson.M{
		base,
		{"$or": []bson.M{
			{"privacy": bson.M{"$ne": models.PrivacySecret}},
			{"members": userID},
		}},
	}}
}
