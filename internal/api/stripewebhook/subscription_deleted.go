package stripewebhooks

import (
	"time"

	"github.com/stripe/stripe-go/v75"

	"github.com/justmurenga/vibe-flow-point-of-sale/database"
	"github.com/justmurenga/vibe-flow-point-of-sale/internal/domain/tenants"
)

func handleSubscriptionDeleted(sub *stripe.Subscription) error {
	if sub.ID == "" {
		return nil
	}

	status := string(sub.Status)
	periodEnd := time.Unix(sub.CurrentPeriodEnd, 0)

	var tenant tenants.Tenant
	tenantID := tenantIDFromMetadata(sub.Metadata)
	if tenantID != "" {
		_ = database.DB.Where("id = ?", tenantID).First(&tenant).Error
	}
	if tenant.ID == "" {
		_ = database.DB.Where("subscription_id = ?", sub.ID).First(&tenant).Error
	}
	if tenant.ID == "" {
		return nil
	}

	updates := map[string]interface{}{
		"stripe_subscription_status": status,
		"subscription_end":           periodEnd,
		"current_period_end":         periodEnd,
	}

	return database.DB.Model(&tenants.Tenant{}).
		Where("id = ?", tenant.ID).
		Updates(updates).Error
}
