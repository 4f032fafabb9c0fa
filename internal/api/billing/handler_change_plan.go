package billing

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/subscription"

	"github.com/justmurenga/vibe-flow-point-of-sale/database"
	"github.com/justmurenga/vibe-flow-point-of-sale/internal/domain/plans"
)

// ChangePlan swaps the subscription's price in place. Stripe prorates; the
// webhook applies the resulting plan/period changes to the tenant row.
func ChangePlan(c *gin.Context) {
	var body struct {
		PriceID string `json:"price_id"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.PriceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid price_id"})
		return
	}

	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")
	if stripe.Key == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stripe key not configured"})
		return
	}

	var plan plans.Plan
	if err := database.DB.Where("stripe_price_id = ?", body.PriceID).First(&plan).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown plan/price_id"})
		return
	}

	tenant, ok := callerTenant(c)
	if !ok {
		return
	}
	if tenant.SubscriptionId == nil || *tenant.SubscriptionId == "" {
		c.JSON(http.StatusConflict, gin.H{"error": "No active subscription to change"})
		return
	}

	sub, err := subscription.Get(*tenant.SubscriptionId, nil)
	if err != nil || sub.Items == nil || len(sub.Items.Data) == 0 {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load subscription"})
		return
	}

	if sub.Items.Data[0].Price != nil && sub.Items.Data[0].Price.ID == plan.StripePriceID {
		c.JSON(http.StatusConflict, gin.H{"error": "Already on this plan"})
		return
	}

	_, err = subscription.Update(*tenant.SubscriptionId, &stripe.SubscriptionParams{
		Items: []*stripe.SubscriptionItemsParams{
			{
				ID:    stripe.String(sub.Items.Data[0].ID),
				Price: stripe.String(plan.StripePriceID),
			},
		},
		ProrationBehavior: stripe.String("create_prorations"),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to change plan", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Plan change requested"})
}
