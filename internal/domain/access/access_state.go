package access

import (
	"time"

	"github.com/justmurenga/vibe-flow-point-of-sale/internal/domain/plans"
	"github.com/justmurenga/vibe-flow-point-of-sale/internal/domain/tenants"
	"github.com/justmurenga/vibe-flow-point-of-sale/internal/infra/stripe"
)

// Effective access for a tenant: trial|full|limited|locked
func ComputeEffectiveAccessState(now time.Time, t tenants.Tenant) AccessState {
	// Suspended/cancelled tenants are locked regardless of billing state.
	if t.Status == tenants.StatusSuspended || t.Status == tenants.StatusCancelled {
		return AccessLocked
	}

	// Active trial
	if t.TrialEndAt != nil && now.Before(*t.TrialEndAt) {
		return AccessTrial
	}

	// No subscription at all
	if t.SubscriptionId == nil || *t.SubscriptionId == "" {
		return AccessLocked
	}

	// Subscription exists -> interpret Stripe status
	switch stripe.NormalizeStripeStatus(t.StripeSubscriptionStatus) {
	case "active", "trialing":
		// Full vs limited decided by tier
		switch plans.PlanTier(t.Plan) {
		case plans.TierStandard, plans.TierPremium:
			return AccessFull
		default:
			return AccessLimited
		}

	case "past_due":
		return AccessLimited

	case "canceled":
		// Paid-through access until the period actually ends.
		if t.CurrentPeriodEnd != nil && now.Before(*t.CurrentPeriodEnd) {
			switch plans.PlanTier(t.Plan) {
			case plans.TierStandard, plans.TierPremium:
				return AccessFull
			default:
				return AccessLimited
			}
		}
		return AccessLocked

	default:
		return AccessLocked
	}
}
