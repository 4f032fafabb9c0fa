package billing

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/justmurenga/vibe-flow-point-of-sale/database"
	"github.com/justmurenga/vibe-flow-point-of-sale/internal/domain/billing"
)

func GetPaymentHistory(c *gin.Context) {
	tenantID := c.GetString("jwt_tenant_id")
	if tenantID == "" {
		c.JSON(http.StatusForbidden, gin.H{"error": "No store in scope"})
		return
	}

	var payments []billing.Payment
	if err := database.DB.
		Preload("Plan").
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load payments"})
		return
	}

	c.JSON(http.StatusOK, payments)
}
