package pos

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/justmurenga/vibe-flow-point-of-sale/database"
	"github.com/justmurenga/vibe-flow-point-of-sale/internal/domain/pos"
)

type productInput struct {
	Name           string  `json:"name" binding:"required"`
	SKU            string  `json:"sku" binding:"required"`
	PriceUSD       float64 `json:"price_usd" binding:"required"`
	CostUSD        float64 `json:"cost_usd"`
	StockQty       *int    `json:"stock_qty"`
	ReorderLevel   *int    `json:"reorder_level"`
	TrackInventory *bool   `json:"track_inventory"`
}

// GET /products?include_archived=1
func ListProducts(c *gin.Context) {
	tenantID, ok := tenantScope(c)
	if !ok {
		return
	}

	q := tenantQuery(c, tenantID, &pos.Product{}).Scopes(paginate(c)).Order("name")
	if c.Query("include_archived") == "" {
		q = q.Where("is_archived = ?", false)
	}

	var products []pos.Product
	if err := q.Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load products"})
		return
	}
	c.JSON(http.StatusOK, products)
}

func GetProduct(c *gin.Context) {
	tenantID, ok := tenantScope(c)
	if !ok {
		return
	}

	var product pos.Product
	if err := database.DB.Where("id = ? AND tenant_id = ?", c.Param("id"), tenantID).First(&product).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, product)
}

func CreateProduct(c *gin.Context) {
	tenantID, ok := tenantScope(c)
	if !ok {
		return
	}

	var input productInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product := pos.Product{
		TenantID: tenantID,
		Name:     input.Name,
		SKU:      input.SKU,
		PriceUSD: input.PriceUSD,
		CostUSD:  input.CostUSD,
	}
	if input.StockQty != nil {
		product.StockQty = *input.StockQty
	}
	if input.ReorderLevel != nil {
		product.ReorderLevel = *input.ReorderLevel
	}
	product.TrackInventory = input.TrackInventory == nil || *input.TrackInventory

	// Opening stock gets its movement row in the same transaction, so a
	// product can never carry stock without a movement trail.
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&product).Error; err != nil {
			return err
		}
		if product.StockQty == 0 {
			return nil
		}
		movement := pos.StockMovement{
			TenantID:  tenantID,
			ProductID: product.ID,
			Quantity:  product.StockQty,
			Reason:    pos.MovementAdjustment,
		}
		return tx.Create(&movement).Error
	})
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "SKU may already exist in this store"})
		return
	}

	c.JSON(http.StatusCreated, product)
}

func UpdateProduct(c *gin.Context) {
	tenantID, ok := tenantScope(c)
	if !ok {
		return
	}

	var product pos.Product
	if err := database.DB.Where("id = ? AND tenant_id = ?", c.Param("id"), tenantID).First(&product).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	var input productInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{
		"name":      input.Name,
		"sku":       input.SKU,
		"price_usd": input.PriceUSD,
		"cost_usd":  input.CostUSD,
	}
	if input.ReorderLevel != nil {
		updates["reorder_level"] = *input.ReorderLevel
	}
	if input.TrackInventory != nil {
		updates["track_inventory"] = *input.TrackInventory
	}

	if err := database.DB.Model(&product).Updates(updates).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Failed to update product"})
		return
	}
	c.JSON(http.StatusOK, product)
}

// POST /products/:id/restock  {"quantity": 10}
func RestockProduct(c *gin.Context) {
	tenantID, ok := tenantScope(c)
	if !ok {
		return
	}

	var input struct {
		Quantity int `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Quantity == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be non-zero"})
		return
	}

	var product pos.Product
	if err := database.DB.Where("id = ? AND tenant_id = ?", c.Param("id"), tenantID).First(&product).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	reason := pos.MovementRestock
	if input.Quantity < 0 {
		reason = pos.MovementAdjustment
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&product).
			Update("stock_qty", gorm.Expr("stock_qty + ?", input.Quantity)).Error; err != nil {
			return err
		}
		movement := pos.StockMovement{
			TenantID:  tenantID,
			ProductID: product.ID,
			Quantity:  input.Quantity,
			Reason:    reason,
		}
		return tx.Create(&movement).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to adjust stock"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Stock adjusted"})
}

// POST /products/:id/archive
// Products are archived, not deleted; sales history keeps pointing at them.
func ArchiveProduct(c *gin.Context) {
	tenantID, ok := tenantScope(c)
	if !ok {
		return
	}

	res := tenantQuery(c, tenantID, &pos.Product{}).
		Where("id = ?", c.Param("id")).
		Update("is_archived", true)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to archive product"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product archived"})
}

// GET /products/:id/movements
func ListStockMovements(c *gin.Context) {
	tenantID, ok := tenantScope(c)
	if !ok {
		return
	}

	var movements []pos.StockMovement
	if err := database.DB.
		Where("tenant_id = ? AND product_id = ?", tenantID, c.Param("id")).
		Order("created_at DESC").
		Scopes(paginate(c)).
		Find(&movements).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stock movements"})
		return
	}
	c.JSON(http.StatusOK, movements)
}
