package domain

// Role is the closed set of back-office roles.
type Role string

const (
	RoleSuperadmin Role = "superadmin"
	RoleModerator  Role = "moderator"
	RoleSupport    Role = "support"
)

// Capability names an operation class that a role may be allowed to perform.
type Capability string

const (
	// CapManageAdmins covers creating admins and managing support accounts.
	CapManageAdmins Capability = "manage_admins"
	// CapApproveRecords covers donor, organizer and camp approvals.
	CapApproveRecords Capability = "approve_records"
	// CapHandleTickets covers support-ticket handling.
	CapHandleTickets Capability = "handle_tickets"
)

// roleCapabilities is the single source of truth for role-based access.
var roleCapabilities = map[Role]map[Capability]struct{}{
	RoleSuperadmin: {
		CapManageAdmins:   {},
		CapApproveRecords: {},
		CapHandleTickets:  {},
	},
	RoleModerator: {
		CapApproveRecords: {},
	},
	RoleSupport: {
		CapHandleTickets: {},
	},
}

// Valid reports whether r is one of the enumerated roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperadmin, RoleModerator, RoleSupport:
		return true
	}
	return false
}

// Can reports whether the role grants the given capability.
func (r Role) Can(c Capability) bool {
	caps, ok := roleCapabilities[r]
	if !ok {
		return false
	}
	_, ok = caps[c]
	return ok
}
