package pos

import (
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/justmurenga/vibe-flow-point-of-sale/database"
	"github.com/justmurenga/vibe-flow-point-of-sale/internal/domain/billing"
	"github.com/justmurenga/vibe-flow-point-of-sale/internal/domain/pos"
	"github.com/justmurenga/vibe-flow-point-of-sale/internal/metrics"
)

type saleItemInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required"`
}

type saleInput struct {
	CustomerID      *uint           `json:"customer_id"`
	PaymentMethodID uint            `json:"payment_method_id" binding:"required"`
	DiscountUSD     float64         `json:"discount_usd"`
	Items           []saleItemInput `json:"items" binding:"required"`
}

// taxRate reads the tenant-wide tax rate from env until tax settings move
// into tenant configuration. TODO: per-tenant tax rate column.
func taxRate() float64 {
	v := os.Getenv("POS_TAX_RATE")
	if v == "" {
		return 0
	}
	rate, err := strconv.ParseFloat(v, 64)
	if err != nil || rate < 0 || rate > 1 {
		return 0
	}
	return rate
}

func ListSales(c *gin.Context) {
	tenantID, ok := tenantScope(c)
	if !ok {
		return
	}

	var sales []pos.Sale
	if err := database.DB.
		Preload("Items").
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Scopes(paginate(c)).
		Find(&sales).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load sales"})
		return
	}
	c.JSON(http.StatusOK, sales)
}

func GetSale(c *gin.Context) {
	tenantID, ok := tenantScope(c)
	if !ok {
		return
	}

	var sale pos.Sale
	if err := database.DB.
		Preload("Items").
		Where("id = ? AND tenant_id = ?", c.Param("id"), tenantID).
		First(&sale).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Sale not found"})
		return
	}
	c.JSON(http.StatusOK, sale)
}

// CreateSale records a sale: validates products and payment method, prices
// lines at current product prices, decrements tracked stock, and writes the
// stock movements — all in one transaction.
func CreateSale(c *gin.Context) {
	tenantID, ok := tenantScope(c)
	if !ok {
		return
	}

	var input saleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(input.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Sale needs at least one item"})
		return
	}
	if input.DiscountUSD < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Discount cannot be negative"})
		return
	}
	for _, it := range input.Items {
		if it.Quantity <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Item quantity must be positive"})
			return
		}
	}

	var method billing.PaymentMethod
	if err := database.DB.
		Where("id = ? AND tenant_id = ? AND is_active = ?", input.PaymentMethodID, tenantID, true).
		First(&method).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown payment method"})
		return
	}

	if input.CustomerID != nil {
		var customer pos.Customer
		if err := database.DB.
			Where("id = ? AND tenant_id = ?", *input.CustomerID, tenantID).
			First(&customer).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown customer"})
			return
		}
	}

	sale := pos.Sale{
		TenantID:        tenantID,
		CashierID:       c.GetUint("user_id"),
		CustomerID:      input.CustomerID,
		PaymentMethodID: method.ID,
		DiscountUSD:     input.DiscountUSD,
		Status:          pos.SaleCompleted,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		// Lock the product rows for the whole transaction so two sales of
		// the last unit cannot both pass the stock check.
		products := make(map[uint]pos.Product, len(input.Items))
		for _, it := range input.Items {
			var product pos.Product
			if err := tx.
				Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("id = ? AND tenant_id = ? AND is_archived = ?", it.ProductID, tenantID, false).
				First(&product).Error; err != nil {
				return fmt.Errorf("product %d not found", it.ProductID)
			}
			if product.TrackInventory && product.StockQty < it.Quantity {
				return fmt.Errorf("insufficient stock for %s", product.Name)
			}
			products[product.ID] = product
			sale.Items = append(sale.Items, pos.SaleItem{
				ProductID:    product.ID,
				Quantity:     it.Quantity,
				UnitPriceUSD: product.PriceUSD,
			})
		}

		pos.ComputeTotals(&sale, taxRate())

		if err := tx.Create(&sale).Error; err != nil {
			return err
		}

		for _, item := range sale.Items {
			product := products[item.ProductID]
			if !product.TrackInventory {
				continue
			}
			// Guarded decrement: stock never goes below zero, even when
			// one sale carries the same product on several lines.
			res := tx.Model(&pos.Product{}).
				Where("id = ? AND stock_qty >= ?", item.ProductID, item.Quantity).
				Update("stock_qty", gorm.Expr("stock_qty - ?", item.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("insufficient stock for %s", product.Name)
			}
			movement := pos.StockMovement{
				TenantID:  tenantID,
				ProductID: item.ProductID,
				Quantity:  -item.Quantity,
				Reason:    pos.MovementSale,
				SaleID:    &sale.ID,
			}
			if err := tx.Create(&movement).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	metrics.SalesRecorded.Inc()
	c.JSON(http.StatusCreated, sale)
}

// POST /sales/:id/void
// Voiding restocks the sold items; the sale row stays for the audit trail.
func VoidSale(c *gin.Context) {
	tenantID, ok := tenantScope(c)
	if !ok {
		return
	}

	var sale pos.Sale
	if err := database.DB.
		Preload("Items").
		Where("id = ? AND tenant_id = ?", c.Param("id"), tenantID).
		First(&sale).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Sale not found"})
		return
	}
	if sale.Status == pos.SaleVoided {
		c.JSON(http.StatusConflict, gin.H{"error": "Sale already voided"})
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&sale).Update("status", pos.SaleVoided).Error; err != nil {
			return err
		}
		for _, item := range sale.Items {
			var product pos.Product
			if err := tx.Where("id = ?", item.ProductID).First(&product).Error; err != nil {
				continue // product may have been archived; skip restock
			}
			if !product.TrackInventory {
				continue
			}
			if err := tx.Model(&product).
				Update("stock_qty", gorm.Expr("stock_qty + ?", item.Quantity)).Error; err != nil {
				return err
			}
			movement := pos.StockMovement{
				TenantID:  tenantID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Reason:    pos.MovementAdjustment,
				SaleID:    &sale.ID,
			}
			if err := tx.Create(&movement).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to void sale"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Sale voided"})
}
