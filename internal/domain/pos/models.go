package pos

import (
	"time"
)

// Sale statuses.
const (
	SaleCompleted = "completed"
	SaleVoided    = "voided"
)

// Stock movement reasons.
const (
	MovementSale       = "sale"
	MovementRestock    = "restock"
	MovementAdjustment = "adjustment"
)

type Product struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	TenantID string `gorm:"type:uuid;not null;index;uniqueIndex:idx_products_tenant_sku,priority:1" json:"-"`

	Name     string  `gorm:"not null" json:"name"`
	SKU      string  `gorm:"not null;uniqueIndex:idx_products_tenant_sku,priority:2" json:"sku"`
	PriceUSD float64 `gorm:"not null" json:"price_usd"`
	CostUSD  float64 `json:"cost_usd"`

	StockQty       int  `gorm:"not null;default:0" json:"stock_qty"`
	ReorderLevel   int  `gorm:"not null;default:0" json:"reorder_level"`
	TrackInventory bool `gorm:"not null;default:true" json:"track_inventory"`

	IsArchived bool `gorm:"not null;default:false;index" json:"is_archived"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type StockMovement struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	TenantID  string `gorm:"type:uuid;not null;index" json:"-"`
	ProductID uint   `gorm:"not null;index" json:"product_id"`

	Quantity int    `gorm:"not null" json:"quantity"` // negative for outgoing
	Reason   string `gorm:"type:varchar(20);not null" json:"reason"`
	SaleID   *uint  `gorm:"index" json:"sale_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

type Customer struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	TenantID string `gorm:"type:uuid;not null;index" json:"-"`

	Name  string  `gorm:"not null" json:"name"`
	Tel   *string `json:"tel,omitempty"`
	Email *string `json:"email,omitempty"`

	IsArchived bool `gorm:"not null;default:false;index" json:"is_archived"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Sale struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	TenantID string `gorm:"type:uuid;not null;index" json:"-"`

	CashierID       uint  `gorm:"not null;index" json:"cashier_id"`
	CustomerID      *uint `gorm:"index" json:"customer_id,omitempty"`
	PaymentMethodID uint  `gorm:"not null" json:"payment_method_id"`

	Items []SaleItem `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE" json:"items"`

	SubtotalUSD float64 `gorm:"not null" json:"subtotal_usd"`
	DiscountUSD float64 `gorm:"not null;default:0" json:"discount_usd"`
	TaxUSD      float64 `gorm:"not null;default:0" json:"tax_usd"`
	TotalUSD    float64 `gorm:"not null" json:"total_usd"`

	Status string `gorm:"type:varchar(20);not null;default:'completed';index" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SaleItem struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	SaleID uint `gorm:"not null;index" json:"-"`

	ProductID    uint    `gorm:"not null" json:"product_id"`
	Quantity     int     `gorm:"not null" json:"quantity"`
	UnitPriceUSD float64 `gorm:"not null" json:"unit_price_usd"`
	LineTotalUSD float64 `gorm:"not null" json:"line_total_usd"`
}
