package access

import (
	"time"

	"github.com/justmurenga/vibe-flow-point-of-sale/internal/domain/tenants"
)

type Policy struct {
	State        AccessState
	Groups       []RouteGroup
	Capabilities []string
	Landing      string
}

func ComputePolicy(now time.Time, role string, t tenants.Tenant) Policy {
	state := ComputeEffectiveAccessState(now, t)

	return Policy{
		State:        state,
		Groups:       AllowedGroups(role, state),
		Capabilities: CapabilitiesFor(state, t.Plan),
		Landing:      LandingPath(role, state),
	}
}
