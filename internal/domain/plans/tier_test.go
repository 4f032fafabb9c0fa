package plans

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlanTier(t *testing.T) {
	assert.Equal(t, TierNone, PlanTier(nil))

	// Explicit tier wins, regardless of price.
	assert.Equal(t, TierPremium, PlanTier(&Plan{Tier: "premium", PriceUSD: 1}))
	assert.Equal(t, TierStarter, PlanTier(&Plan{Tier: " Starter ", PriceUSD: 500}))

	// Legacy plans without a tier fall back to price.
	assert.Equal(t, TierStarter, PlanTier(&Plan{PriceUSD: 19}))
	assert.Equal(t, TierStandard, PlanTier(&Plan{PriceUSD: 49}))
	assert.Equal(t, TierPremium, PlanTier(&Plan{PriceUSD: 99}))

	// Junk tier values also fall back.
	assert.Equal(t, TierStandard, PlanTier(&Plan{Tier: "gold", PriceUSD: 59}))
}
