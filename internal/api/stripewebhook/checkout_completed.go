package stripewebhooks

import (
	"errors"
	"fmt"
	"time"

	"github.com/stripe/stripe-go/v75"
	checkoutsession "github.com/stripe/stripe-go/v75/checkout/session"
	"github.com/stripe/stripe-go/v75/subscription"

	"github.com/justmurenga/vibe-flow-point-of-sale/database"
	"github.com/justmurenga/vibe-flow-point-of-sale/internal/domain/billing"
	"github.com/justmurenga/vibe-flow-point-of-sale/internal/domain/plans"
	"github.com/justmurenga/vibe-flow-point-of-sale/internal/domain/tenants"
)

func handleCheckoutSessionCompleted(session *stripe.CheckoutSession) error {
	// Fetch full session with expansions
	fullSession, err := checkoutsession.Get(session.ID, &stripe.CheckoutSessionParams{
		Params: stripe.Params{
			Expand: []*string{
				stripe.String("subscription"),
				stripe.String("customer"),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to fetch expanded checkout session: %w", err)
	}

	if fullSession.Subscription == nil || fullSession.Subscription.ID == "" {
		return errors.New("checkout session missing subscription")
	}
	subscriptionID := fullSession.Subscription.ID

	subData, err := subscription.Get(subscriptionID, nil)
	if err != nil || subData == nil || subData.Items == nil || len(subData.Items.Data) == 0 || subData.Items.Data[0].Price == nil {
		return fmt.Errorf("failed to fetch subscription items: %w", err)
	}

	// Identify tenant: metadata.tenant_id preferred, else ClientReferenceID
	tenantID := tenantIDFromMetadata(subData.Metadata)
	if tenantID == "" {
		tenantID = fullSession.ClientReferenceID
	}
	if tenantID == "" {
		return errors.New("missing tenant_id (metadata.tenant_id or client_reference_id)")
	}

	var tenant tenants.Tenant
	if err := database.DB.Where("id = ?", tenantID).First(&tenant).Error; err != nil {
		return fmt.Errorf("tenant not found: %w", err)
	}

	// Map Stripe price -> Plan
	priceID := subData.Items.Data[0].Price.ID
	var plan plans.Plan
	if err := database.DB.Where("stripe_price_id = ?", priceID).First(&plan).Error; err != nil {
		return fmt.Errorf("plan not found for stripe price_id=%s: %w", priceID, err)
	}

	now := time.Now()
	periodEnd := time.Unix(subData.CurrentPeriodEnd, 0)
	status := string(subData.Status)

	// Trial ends the moment a paid subscription starts.
	updates := map[string]interface{}{
		"plan_id":                    plan.ID,
		"status":                     tenants.StatusActive,
		"subscription_id":            subscriptionID,
		"subscription_start":         now,
		"subscription_end":           periodEnd,
		"current_period_end":         periodEnd,
		"stripe_subscription_status": status,
		"trial_start_at":             nil,
		"trial_end_at":               nil,
	}

	if fullSession.Customer != nil && fullSession.Customer.ID != "" {
		updates["stripe_customer_id"] = fullSession.Customer.ID
	}

	// Cancel a superseded subscription so a tenant never pays twice.
	if tenant.SubscriptionId != nil && *tenant.SubscriptionId != "" && *tenant.SubscriptionId != subscriptionID {
		_, _ = subscription.Cancel(*tenant.SubscriptionId, nil)
	}

	if err := database.DB.Model(&tenants.Tenant{}).
		Where("id = ?", tenant.ID).
		Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to update tenant after checkout: %w", err)
	}

	// Record the payment row shown in billing history.
	payment := billing.Payment{
		TenantID:             tenant.ID,
		PlanID:               &plan.ID,
		StripeSessionID:      fullSession.ID,
		StripeSubscriptionID: &subscriptionID,
		AmountUSD:            float64(fullSession.AmountTotal) / 100.0,
		Status:               "paid",
	}
	if err := database.DB.Create(&payment).Error; err != nil {
		// Session ids are unique; a redelivered webhook lands here.
		return nil
	}

	return nil
}

func tenantIDFromMetadata(md map[string]string) string {
	if md == nil {
		return ""
	}
	return md["tenant_id"]
}
