package access

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/justmurenga/vibe-flow-point-of-sale/internal/domain/users"
)

func TestAllowedGroups(t *testing.T) {
	// Superadmin ignores tenant state entirely.
	assert.Equal(t, []RouteGroup{GroupSuperadmin}, AllowedGroups(users.RoleSuperadmin, AccessLocked))

	assert.ElementsMatch(t,
		[]RouteGroup{GroupAdmin, GroupPOS, GroupBilling, GroupAccount},
		AllowedGroups(users.RoleAdmin, AccessFull))

	assert.ElementsMatch(t,
		[]RouteGroup{GroupPOS, GroupAccount},
		AllowedGroups(users.RoleCashier, AccessTrial))

	// Locked tenants: admins keep billing so they can fix payment, cashiers
	// drop to account only.
	assert.ElementsMatch(t,
		[]RouteGroup{GroupBilling, GroupAccount},
		AllowedGroups(users.RoleAdmin, AccessLocked))
	assert.Equal(t, []RouteGroup{GroupAccount}, AllowedGroups(users.RoleCashier, AccessLocked))

	// Unknown roles get the default user groups.
	assert.Equal(t, []RouteGroup{GroupAccount}, AllowedGroups("intern", AccessFull))
}

func TestCanEnter(t *testing.T) {
	assert.True(t, CanEnter(users.RoleAdmin, AccessFull, GroupPOS))
	assert.True(t, CanEnter(users.RoleManager, AccessTrial, GroupAdmin))
	assert.False(t, CanEnter(users.RoleManager, AccessFull, GroupBilling))
	assert.False(t, CanEnter(users.RoleCashier, AccessFull, GroupAdmin))
	assert.False(t, CanEnter(users.RoleAdmin, AccessLocked, GroupPOS))
	assert.True(t, CanEnter(users.RoleAdmin, AccessLocked, GroupBilling))
}

func TestLandingPath(t *testing.T) {
	assert.Equal(t, "/superadmin", LandingPath(users.RoleSuperadmin, AccessFull))
	assert.Equal(t, "/dashboard", LandingPath(users.RoleAdmin, AccessTrial))
	assert.Equal(t, "/pos", LandingPath(users.RoleCashier, AccessFull))

	// Locked: admins land on billing, everyone else on account.
	assert.Equal(t, "/billing", LandingPath(users.RoleAdmin, AccessLocked))
	assert.Equal(t, "/account", LandingPath(users.RoleCashier, AccessLocked))
}

func TestRedirectFor(t *testing.T) {
	_, ok := RedirectFor(users.RoleAdmin, AccessFull, GroupPOS)
	assert.True(t, ok)

	redirect, ok := RedirectFor(users.RoleCashier, AccessFull, GroupAdmin)
	assert.False(t, ok)
	assert.Equal(t, "/pos", redirect)

	redirect, ok = RedirectFor(users.RoleAdmin, AccessLocked, GroupPOS)
	assert.False(t, ok)
	assert.Equal(t, "/billing", redirect)
}
