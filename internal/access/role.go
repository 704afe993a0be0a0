// Package access implements the role, ownership and visibility rules for CRM
// records. Every predicate here is a pure function: no network, no clock, no
// mutation. Callers gate actions with these predicates before any upstream
// call is made.
package access

import "strings"

// Role is the closed set of dealership staff roles. Visibility widens up the
// hierarchy; edit rights deliberately do not (front-line advisors own the
// write path).
type Role string

const (
	RoleCustomerAdvisor Role = "CUSTOMER_ADVISOR"
	RoleTeamLead        Role = "TEAM_LEAD"
	RoleSalesManager    Role = "SALES_MANAGER"
	RoleGeneralManager  Role = "GENERAL_MANAGER"
	RoleAdmin           Role = "ADMIN"
)

// IsValid reports whether r is a known role. An absent or unrecognized role is
// an authorization failure, not a guest state; everything downstream fails
// closed on it.
func (r Role) IsValid() bool {
	switch r {
	case RoleCustomerAdvisor, RoleTeamLead, RoleSalesManager, RoleGeneralManager, RoleAdmin:
		return true
	default:
		return false
	}
}

// ParseRole maps an identity-provider role claim to a Role.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	return r, r.IsValid()
}

// Scope describes how far a role may see beyond its own records.
type Scope struct {
	SeeAll  bool
	SeeTeam bool
}

// ScopeFor returns the visibility scope for a role.
func ScopeFor(r Role) Scope {
	switch r {
	case RoleTeamLead:
		return Scope{SeeTeam: true}
	case RoleSalesManager, RoleGeneralManager, RoleAdmin:
		return Scope{SeeAll: true}
	default:
		// CUSTOMER_ADVISOR and anything unknown: self only.
		return Scope{}
	}
}
