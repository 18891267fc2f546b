// internal/app/system/authz/capabilities.go
package authz

import "github.com/dalemusser/churchhub/internal/domain/models"

// Action tags a guarded operation. Every role-gated handler checks exactly
// one Action through Can or Authorize.
type Action string

const (
	ChurchUpdate  Action = "church.update"
	ChurchDelete  Action = "church.delete"
	ChurchMembers Action = "church.members"

	// EventManage lets a non-creator update or delete an event.
	EventManage Action = "event.manage"
	// MediaManage lets a non-uploader update or delete media.
	MediaManage Action = "media.manage"

	// DonationViewAll widens donation reads from "own" to the whole church.
	DonationViewAll Action = "donation.view_all"
	// DonationManage lets a non-donor update or delete a donation.
	DonationManage Action = "donation.manage"

	AnnouncementCreate Action = "announcement.create"
	AnnouncementUpdate Action = "announcement.update"
	AnnouncementDelete Action = "announcement.delete"

	DepartmentCreate  Action = "department.create"
	DepartmentUpdate  Action = "department.update"
	DepartmentDelete  Action = "department.delete"
	DepartmentMembers Action = "department.members"

	UserAssignRole Action = "user.assign_role"

	// AuditView reads the audit log. superadmin may read any church.
	AuditView Action = "audit.view"
)

var (
	// Church leadership. admin and pastor are always listed together.
	leadership = []string{models.RoleAdmin, models.RolePastor}

	// Announcements additionally allow deacons and leaders. Departments do not.
	// The two lists differ on purpose and must not be merged.
	announcers = []string{models.RoleAdmin, models.RolePastor, models.RoleDeacon, models.RoleLeader}
)

// capabilities is the role allow-list for every Action. There is no role
// hierarchy: superadmin appears only where it is named.
var capabilities = map[Action][]string{
	ChurchUpdate:  leadership,
	ChurchDelete:  {models.RoleAdmin},
	ChurchMembers: leadership,

	EventManage: leadership,
	MediaManage: leadership,

	DonationViewAll: leadership,
	DonationManage:  leadership,

	AnnouncementCreate: announcers,
	AnnouncementUpdate: announcers,
	AnnouncementDelete: announcers,

	DepartmentCreate:  leadership,
	DepartmentUpdate:  leadership,
	DepartmentDelete:  leadership,
	DepartmentMembers: leadership,

	UserAssignRole: {models.RoleAdmin, models.RoleSuperAdmin, models.RoleDenominationAdmin},

	AuditView: {models.RoleAdmin, models.RoleSuperAdmin},
}

// Can reports whether role is on the allow-list for a.
// Unknown actions allow no one.
func Can(role string, a Action) bool {
	for _, r := range capabilities[a] {
		if r == role {
			return true
		}
	}
	return false
}

// AllowedRoles returns a copy of the allow-list for a.
func AllowedRoles(a Action) []string {
	out := make([]string, len(capabilities[a]))
	copy(out, capabilities[a])
	return out
}

// Actions returns every known Action.
func Actions() []Action {
	out := make([]Action, 0, len(capabilities))
	for a := range capabilities {
		out = append(out, a)
	}
	return out
}
