package access

import (
	"github.com/justmurenga/vibe-flow-point-of-sale/internal/domain/users"
)

/*
	Role/route table
	----------------
	Server-side source of truth for which route groups a role may enter and
	where a navigation lands otherwise. The frontend guards mirror this.
*/

var roleGroups = map[string][]RouteGroup{
	users.RoleSuperadmin: {GroupSuperadmin},
	users.RoleAdmin:      {GroupAdmin, GroupPOS, GroupBilling, GroupAccount},
	users.RoleManager:    {GroupAdmin, GroupPOS, GroupAccount},
	users.RoleCashier:    {GroupPOS, GroupAccount},
	users.RoleUser:       {GroupAccount},
}

var roleLanding = map[string]string{
	users.RoleSuperadmin: "/superadmin",
	users.RoleAdmin:      "/dashboard",
	users.RoleManager:    "/dashboard",
	users.RoleCashier:    "/pos",
	users.RoleUser:       "/account",
}

// AllowedGroups returns the route groups a role may enter given the
// tenant's access state. Locked tenants collapse to billing+account for
// admins and account only for everyone else; superadmin is never locked.
func AllowedGroups(role string, state AccessState) []RouteGroup {
	if role == users.RoleSuperadmin {
		return roleGroups[role]
	}

	groups, ok := roleGroups[role]
	if !ok {
		groups = roleGroups[users.RoleUser]
	}

	if state != AccessLocked {
		return groups
	}

	locked := []RouteGroup{GroupAccount}
	for _, g := range groups {
		if g == GroupBilling {
			locked = append([]RouteGroup{GroupBilling}, locked...)
		}
	}
	return locked
}

// CanEnter reports whether role may enter group under state.
func CanEnter(role string, state AccessState, group RouteGroup) bool {
	for _, g := range AllowedGroups(role, state) {
		if g == group {
			return true
		}
	}
	return false
}

// LandingPath returns where a fresh login for role should land.
func LandingPath(role string, state AccessState) string {
	if role != users.RoleSuperadmin && state == AccessLocked {
		if CanEnter(role, state, GroupBilling) {
			return "/billing"
		}
		return "/account"
	}
	if p, ok := roleLanding[role]; ok {
		return p
	}
	return "/account"
}

// RedirectFor decides where to send a navigation that is not allowed:
// the caller's landing path, which by construction is always permitted.
func RedirectFor(role string, state AccessState, group RouteGroup) (string, bool) {
	if CanEnter(role, state, group) {
		return "", true
	}
	return LandingPath(role, state), false
}
