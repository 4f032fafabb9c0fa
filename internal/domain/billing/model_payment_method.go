package billing

import "time"

// PaymentMethod is a tender type a tenant accepts at the till (cash,
// m-pesa, card, ...). Seeded with defaults at provisioning time.
type PaymentMethod struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	TenantID string `gorm:"type:uuid;not null;index;uniqueIndex:idx_payment_methods_tenant_name,priority:1" json:"-"`

	Name     string `gorm:"not null;uniqueIndex:idx_payment_methods_tenant_name,priority:2" json:"name"`
	Kind     string `gorm:"type:varchar(20);not null;default:'cash'" json:"kind"` // cash|mobile_money|card|bank
	IsActive bool   `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
