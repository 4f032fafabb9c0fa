package billing

import (
	"time"

	"github.com/justmurenga/vibe-flow-point-of-sale/internal/domain/plans"
	"github.com/justmurenga/vibe-flow-point-of-sale/internal/domain/tenants"
)

type Payment struct {
	ID                   uint   `gorm:"primaryKey"`
	TenantID             string `gorm:"type:uuid;index"`
	Tenant               tenants.Tenant
	PlanID               *uint
	Plan                 *plans.Plan
	StripeSessionID      string `gorm:"uniqueIndex"`
	StripeSubscriptionID *string
	AmountUSD            float64
	Status               string
	InvoiceID            *string
	ReceiptURL           *string
	CreatedAt            time.Time
}
