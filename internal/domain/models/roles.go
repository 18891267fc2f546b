// internal/domain/models/roles.go
package models

// Canonical role identifiers stored in User.Role.
//
// There is no hierarchy between these values. Every permission check names the
// roles it allows explicitly (see authz capabilities).
const (
	RoleMember            = "member"
	RoleVolunteer         = "volunteer"
	RoleLeader            = "leader"
	RoleDeacon            = "deacon"
	RolePastor            = "pastor"
	RoleAdmin             = "admin"
	RoleDenominationAdmin = "denomination-admin"
	RoleSuperAdmin        = "superadmin"
)

// Roles is the full set of allowed role identifiers.
var Roles = []string{
	RoleMember,
	RoleVolunteer,
	RoleLeader,
	RoleDeacon,
	RolePastor,
	RoleAdmin,
	RoleDenominationAdmin,
	RoleSuperAdmin,
}

// DefaultRole is assigned at registration when no role is supplied.
const DefaultRole = RoleMember

// IsValidRole reports whether role is one of Roles.
func IsValidRole(role string) bool {
	for _, r := range Roles {
		if r == role {
			return true
		}
	}
	return false
}
