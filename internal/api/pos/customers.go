package pos

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/justmurenga/vibe-flow-point-of-sale/database"
	"github.com/justmurenga/vibe-flow-point-of-sale/internal/domain/pos"
)

type customerInput struct {
	Name  string  `json:"name" binding:"required"`
	Tel   *string `json:"tel"`
	Email *string `json:"email"`
}

func ListCustomers(c *gin.Context) {
	tenantID, ok := tenantScope(c)
	if !ok {
		return
	}

	q := tenantQuery(c, tenantID, &pos.Customer{}).Scopes(paginate(c)).Order("name")
	if c.Query("include_archived") == "" {
		q = q.Where("is_archived = ?", false)
	}

	var customers []pos.Customer
	if err := q.Find(&customers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load customers"})
		return
	}
	c.JSON(http.StatusOK, customers)
}

func GetCustomer(c *gin.Context) {
	tenantID, ok := tenantScope(c)
	if !ok {
		return
	}

	var customer pos.Customer
	if err := database.DB.Where("id = ? AND tenant_id = ?", c.Param("id"), tenantID).First(&customer).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}
	c.JSON(http.StatusOK, customer)
}

func CreateCustomer(c *gin.Context) {
	tenantID, ok := tenantScope(c)
	if !ok {
		return
	}

	var input customerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	customer := pos.Customer{
		TenantID: tenantID,
		Name:     input.Name,
		Tel:      input.Tel,
		Email:    input.Email,
	}
	if err := database.DB.Create(&customer).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create customer"})
		return
	}
	c.JSON(http.StatusCreated, customer)
}

func UpdateCustomer(c *gin.Context) {
	tenantID, ok := tenantScope(c)
	if !ok {
		return
	}

	var customer pos.Customer
	if err := database.DB.Where("id = ? AND tenant_id = ?", c.Param("id"), tenantID).First(&customer).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}

	var input customerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := database.DB.Model(&customer).Updates(map[string]interface{}{
		"name":  input.Name,
		"tel":   input.Tel,
		"email": input.Email,
	}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update customer"})
		return
	}
	c.JSON(http.StatusOK, customer)
}

// POST /customers/:id/archive
func ArchiveCustomer(c *gin.Context) {
	tenantID, ok := tenantScope(c)
	if !ok {
		return
	}

	res := tenantQuery(c, tenantID, &pos.Customer{}).
		Where("id = ?", c.Param("id")).
		Update("is_archived", true)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to archive customer"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Customer archived"})
}
