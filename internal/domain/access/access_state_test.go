package access

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/justmurenga/vibe-flow-point-of-sale/internal/domain/plans"
	"github.com/justmurenga/vibe-flow-point-of-sale/internal/domain/tenants"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func strPtr(s string) *string        { return &s }
func timePtr(t time.Time) *time.Time { return &t }

func standardPlan() *plans.Plan {
	return &plans.Plan{Name: "Standard", PriceUSD: 49, Tier: plans.TierStandard}
}

func starterPlan() *plans.Plan {
	return &plans.Plan{Name: "Starter", PriceUSD: 19, Tier: plans.TierStarter}
}

func TestComputeEffectiveAccessState(t *testing.T) {
	cases := []struct {
		name   string
		tenant tenants.Tenant
		want   AccessState
	}{
		{
			name:   "suspended tenant is locked",
			tenant: tenants.Tenant{Status: tenants.StatusSuspended, TrialEndAt: timePtr(testNow.Add(24 * time.Hour))},
			want:   AccessLocked,
		},
		{
			name:   "cancelled tenant is locked",
			tenant: tenants.Tenant{Status: tenants.StatusCancelled},
			want:   AccessLocked,
		},
		{
			name:   "active trial",
			tenant: tenants.Tenant{Status: tenants.StatusTrial, TrialEndAt: timePtr(testNow.Add(24 * time.Hour))},
			want:   AccessTrial,
		},
		{
			name:   "expired trial with no subscription",
			tenant: tenants.Tenant{Status: tenants.StatusTrial, TrialEndAt: timePtr(testNow.Add(-24 * time.Hour))},
			want:   AccessLocked,
		},
		{
			name: "active subscription on standard plan",
			tenant: tenants.Tenant{
				Status:                   tenants.StatusActive,
				SubscriptionId:           strPtr("sub_1"),
				StripeSubscriptionStatus: strPtr("active"),
				Plan:                     standardPlan(),
			},
			want: AccessFull,
		},
		{
			name: "active subscription on starter plan is limited",
			tenant: tenants.Tenant{
				Status:                   tenants.StatusActive,
				SubscriptionId:           strPtr("sub_2"),
				StripeSubscriptionStatus: strPtr("active"),
				Plan:                     starterPlan(),
			},
			want: AccessLimited,
		},
		{
			name: "past due subscription is limited",
			tenant: tenants.Tenant{
				Status:                   tenants.StatusActive,
				SubscriptionId:           strPtr("sub_3"),
				StripeSubscriptionStatus: strPtr("past_due"),
				Plan:                     standardPlan(),
			},
			want: AccessLimited,
		},
		{
			name: "canceled but paid through keeps access",
			tenant: tenants.Tenant{
				Status:                   tenants.StatusActive,
				SubscriptionId:           strPtr("sub_4"),
				StripeSubscriptionStatus: strPtr("canceled"),
				CurrentPeriodEnd:         timePtr(testNow.Add(72 * time.Hour)),
				Plan:                     standardPlan(),
			},
			want: AccessFull,
		},
		{
			name: "canceled past period end is locked",
			tenant: tenants.Tenant{
				Status:                   tenants.StatusActive,
				SubscriptionId:           strPtr("sub_5"),
				StripeSubscriptionStatus: strPtr("canceled"),
				CurrentPeriodEnd:         timePtr(testNow.Add(-time.Hour)),
				Plan:                     standardPlan(),
			},
			want: AccessLocked,
		},
		{
			name: "paused subscription is locked",
			tenant: tenants.Tenant{
				Status:                   tenants.StatusActive,
				SubscriptionId:           strPtr("sub_6"),
				StripeSubscriptionStatus: strPtr("paused"),
				Plan:                     standardPlan(),
			},
			want: AccessLocked,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ComputeEffectiveAccessState(testNow, tc.tenant))
		})
	}
}

func TestCapabilitiesFor(t *testing.T) {
	assert.Empty(t, CapabilitiesFor(AccessLocked, standardPlan()))
	assert.Equal(t, []string{"sell"}, CapabilitiesFor(AccessLimited, standardPlan()))
	assert.Contains(t, CapabilitiesFor(AccessTrial, nil), "inventory")
	assert.Contains(t, CapabilitiesFor(AccessFull, &plans.Plan{Tier: plans.TierPremium}), "custom_domain")
	assert.NotContains(t, CapabilitiesFor(AccessFull, standardPlan()), "custom_domain")
}
