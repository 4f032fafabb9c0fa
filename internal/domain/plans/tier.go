package plans

import "strings"

// Tier constants (single source of truth)
const (
	TierNone     = "none"
	TierStarter  = "starter"
	TierStandard = "standard"
	TierPremium  = "premium"
)

// PlanTier returns the effective tier for a plan.
// Priority:
// 1. Explicit Tier stored in DB
// 2. Fallback inference by price (legacy safety net)
func PlanTier(p *Plan) string {
	if p == nil {
		return TierNone
	}

	tier := strings.ToLower(strings.TrimSpace(p.Tier))
	switch tier {
	case TierStarter, TierStandard, TierPremium:
		return tier
	}

	return inferTierFromPrice(p.PriceUSD)
}

// inferTierFromPrice exists ONLY as a backward-compatibility fallback for
// plans synced before the tier column existed.
func inferTierFromPrice(priceUSD float64) string {
	switch {
	case priceUSD >= 99:
		return TierPremium
	case priceUSD >= 49:
		return TierStandard
	default:
		return TierStarter
	}
}
