package provisioning

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/justmurenga/vibe-flow-point-of-sale/internal/domain/billing"
	"github.com/justmurenga/vibe-flow-point-of-sale/internal/domain/pos"
	"github.com/justmurenga/vibe-flow-point-of-sale/internal/domain/tenants"
)

// SeedTenantDefaults creates the rows every new tenant starts with:
// default payment methods and a walk-in customer. Idempotent — a redelivered
// job for an already-provisioned tenant is a no-op.
func SeedTenantDefaults(db *gorm.DB, tenantID string) error {
	var tenant tenants.Tenant
	if err := db.Where("id = ?", tenantID).First(&tenant).Error; err != nil {
		return fmt.Errorf("tenant %s not found: %w", tenantID, err)
	}
	if tenant.ProvisionedAt != nil {
		return nil
	}

	defaults := []billing.PaymentMethod{
		{TenantID: tenantID, Name: "Cash", Kind: "cash"},
		{TenantID: tenantID, Name: "M-Pesa", Kind: "mobile_money"},
		{TenantID: tenantID, Name: "Card", Kind: "card"},
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for _, pm := range defaults {
			if err := tx.Create(&pm).Error; err != nil {
				return fmt.Errorf("seed payment method %s: %w", pm.Name, err)
			}
		}

		walkIn := pos.Customer{TenantID: tenantID, Name: "Walk-in Customer"}
		if err := tx.Create(&walkIn).Error; err != nil {
			return fmt.Errorf("seed walk-in customer: %w", err)
		}

		now := time.Now()
		if err := tx.Model(&tenants.Tenant{}).
			Where("id = ?", tenantID).
			Update("provisioned_at", now).Error; err != nil {
			return fmt.Errorf("mark tenant provisioned: %w", err)
		}
		return nil
	})
}
