package users

import (
	"time"

	"github.com/justmurenga/vibe-flow-point-of-sale/config"
	"github.com/justmurenga/vibe-flow-point-of-sale/internal/domain/access"
	"github.com/justmurenga/vibe-flow-point-of-sale/internal/domain/plans"
	"github.com/justmurenga/vibe-flow-point-of-sale/internal/domain/tenants"
	"github.com/justmurenga/vibe-flow-point-of-sale/internal/infra/stripe"
)

func BuildTenantDTO(t *tenants.Tenant) *TenantDTO {
	if t == nil {
		return nil
	}
	return &TenantDTO{
		ID:           t.ID,
		Name:         t.Name,
		Subdomain:    t.Subdomain,
		CustomDomain: t.CustomDomain,
		Status:       t.Status,
		StoreURL:     tenants.BuildStoreURL(t.Subdomain, config.BASE_DOMAIN),
		Provisioned:  t.ProvisionedAt != nil,
	}
}

func BuildPlanDTO(p *plans.Plan) *PlanDTO {
	if p == nil {
		return nil
	}
	return &PlanDTO{
		ID:            p.ID,
		Key:           p.Name,
		Tier:          plans.PlanTier(p),
		Interval:      p.Interval,
		PriceUSD:      p.PriceUSD,
		StripePriceID: p.StripePriceID,
	}
}

func BuildSubscriptionDTO(t *tenants.Tenant) *SubscriptionDTO {
	if t == nil || t.SubscriptionId == nil || *t.SubscriptionId == "" {
		return nil
	}
	return &SubscriptionDTO{
		Status:               stripe.NormalizeStripeStatus(t.StripeSubscriptionStatus),
		StartsAt:             t.SubscriptionStart,
		CurrentPeriodEnd:     t.CurrentPeriodEnd,
		StripeSubscriptionID: t.SubscriptionId,
	}
}

func BuildTrialDTO(now time.Time, t *tenants.Tenant) *TrialDTO {
	if t == nil || t.TrialStartAt == nil || t.TrialEndAt == nil {
		return nil
	}
	var daysLeft *int
	if now.Before(*t.TrialEndAt) {
		d := int(t.TrialEndAt.Sub(now).Hours() / 24)
		daysLeft = &d
	}
	return &TrialDTO{
		StartsAt: t.TrialStartAt,
		EndsAt:   t.TrialEndAt,
		DaysLeft: daysLeft,
	}
}

func BuildAccessDTO(policy access.Policy) AccessDTO {
	groups := make([]string, 0, len(policy.Groups))
	for _, g := range policy.Groups {
		groups = append(groups, string(g))
	}
	return AccessDTO{
		State:        string(policy.State),
		Groups:       groups,
		Capabilities: policy.Capabilities,
		Landing:      policy.Landing,
	}
}
