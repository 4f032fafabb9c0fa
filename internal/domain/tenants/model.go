package tenants

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/justmurenga/vibe-flow-point-of-sale/internal/domain/plans"
)

// Tenant status lifecycle. Tenants are never hard-deleted: deactivation
// flips the status instead.
const (
	StatusTrial     = "trial"
	StatusActive    = "active"
	StatusSuspended = "suspended"
	StatusCancelled = "cancelled"
)

type Tenant struct {
	ID   string `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name string `gorm:"not null" json:"name"`

	Subdomain    string  `gorm:"not null;uniqueIndex:idx_tenants_subdomain" json:"subdomain"`
	CustomDomain *string `gorm:"uniqueIndex:idx_tenants_custom_domain" json:"custom_domain,omitempty"`

	Status string `gorm:"type:varchar(20);not null;default:'trial';index" json:"status"`

	PlanID *uint       `json:"plan_id,omitempty"`
	Plan   *plans.Plan `json:"plan,omitempty"`

	TrialStartAt *time.Time `gorm:"column:trial_start_at" json:"trial_start_at,omitempty"`
	TrialEndAt   *time.Time `gorm:"column:trial_end_at" json:"trial_end_at,omitempty"`

	SubscriptionStart *time.Time `json:"subscription_start,omitempty"`
	SubscriptionEnd   *time.Time `json:"subscription_end,omitempty"`
	SubscriptionId    *string    `gorm:"column:subscription_id;uniqueIndex:idx_tenants_subscription_id" json:"-"`
	StripeCustomerID  *string    `gorm:"column:stripe_customer_id;uniqueIndex:idx_tenants_stripe_customer_id" json:"-"`
	CurrentPeriodEnd  *time.Time `gorm:"column:current_period_end" json:"current_period_end,omitempty"`

	StripeSubscriptionStatus *string `gorm:"column:stripe_subscription_status" json:"-"`

	// Set by the provisioning worker once tenant defaults are seeded.
	ProvisionedAt *time.Time `gorm:"column:provisioned_at" json:"provisioned_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns the id app-side so signup can reference the tenant
// (JWT claims, provisioning job) before the row round-trips.
func (t *Tenant) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// IsOperational reports whether tenant-scoped routes may serve this tenant.
func (t *Tenant) IsOperational() bool {
	return t.Status == StatusTrial || t.Status == StatusActive
}
