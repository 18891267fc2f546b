// Package memberpolicy decides who may change another user's role.
//
// Authorization rules:
//   - superadmin can assign any role to any user
//   - denomination-admin can assign roles below superadmin to users of
//     their own denomination
//   - admin can assign church roles to users of their own church
//   - Everyone else cannot assign roles
package memberpolicy

import (
	"strings"

	"github.com/dalemusser/churchhub/internal/app/system/auth"
	"github.com/dalemusser/churchhub/internal/app/system/authz"
	"github.com/dalemusser/churchhub/internal/domain/models"
)

// CanAssignRole reports whether the caller may set target's role to role.
func CanAssignRole(u *auth.SessionUser, target models.User, role string) bool {
	if !models.IsValidRole(role) || !authz.Can(authz.Role(u), authz.UserAssignRole) {
		return false
	}
	switch authz.Role(u) {
	case models.RoleSuperAdmin:
		return true
	case models.RoleDenominationAdmin:
		if role == models.RoleSuperAdmin {
			return false
		}
		return u.Denomination != "" && strings.EqualFold(u.Denomination, target.Denomination)
	case models.RoleAdmin:
		if role == models.RoleSuperAdmin || role == models.RoleDenominationAdmin {
			return false
		}
		return target.ChurchID != nil && authz.SameChurch(u, *target.ChurchID)
	}
	return false
}
