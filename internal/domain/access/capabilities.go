package access

import (
	"github.com/justmurenga/vibe-flow-point-of-sale/internal/domain/plans"
)

func CapabilitiesFor(state AccessState, plan *plans.Plan) []string {
	// locked: read-only billing screens only
	if state == AccessLocked {
		return []string{}
	}

	// limited: selling keeps working, management features drop off
	if state == AccessLimited {
		return []string{"sell"}
	}

	// trial
	if state == AccessTrial {
		return []string{"sell", "inventory", "reports"}
	}

	// full: tier-based
	switch plans.PlanTier(plan) {
	case plans.TierStarter:
		return []string{"sell", "inventory", "reports"}
	case plans.TierStandard:
		return []string{"sell", "inventory", "reports", "multi_user"}
	case plans.TierPremium:
		return []string{"sell", "inventory", "reports", "multi_user", "custom_domain"}
	default:
		return []string{"sell", "inventory", "reports"}
	}
}
