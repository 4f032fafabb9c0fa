package pos

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/justmurenga/vibe-flow-point-of-sale/database"
	"github.com/justmurenga/vibe-flow-point-of-sale/internal/domain/billing"
)

func ListPaymentMethods(c *gin.Context) {
	tenantID, ok := tenantScope(c)
	if !ok {
		return
	}

	var methods []billing.PaymentMethod
	if err := database.DB.
		Where("tenant_id = ? AND is_active = ?", tenantID, true).
		Order("id").
		Find(&methods).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load payment methods"})
		return
	}
	c.JSON(http.StatusOK, methods)
}

func CreatePaymentMethod(c *gin.Context) {
	tenantID, ok := tenantScope(c)
	if !ok {
		return
	}

	var input struct {
		Name string `json:"name" binding:"required"`
		Kind string `json:"kind"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	switch input.Kind {
	case "", "cash", "mobile_money", "card", "bank":
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid kind"})
		return
	}
	if input.Kind == "" {
		input.Kind = "cash"
	}

	method := billing.PaymentMethod{
		TenantID: tenantID,
		Name:     input.Name,
		Kind:     input.Kind,
		IsActive: true,
	}
	if err := database.DB.Create(&method).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Payment method may already exist"})
		return
	}
	c.JSON(http.StatusCreated, method)
}

// POST /payment-methods/:id/disable
func DisablePaymentMethod(c *gin.Context) {
	tenantID, ok := tenantScope(c)
	if !ok {
		return
	}

	res := database.DB.Model(&billing.PaymentMethod{}).
		Where("id = ? AND tenant_id = ?", c.Param("id"), tenantID).
		Update("is_active", false)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to disable payment method"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Payment method not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payment method disabled"})
}
