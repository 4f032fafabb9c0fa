package pos

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/justmurenga/vibe-flow-point-of-sale/database"
)

// tenantScope pulls the caller's tenant id from the JWT claim. Every POS
// query is scoped by it.
func tenantScope(c *gin.Context) (string, bool) {
	tenantID := c.GetString("jwt_tenant_id")
	if tenantID == "" {
		c.JSON(http.StatusForbidden, gin.H{"error": "No store in scope"})
		return "", false
	}
	return tenantID, true
}

// paginate applies ?page=&per_page= with sane bounds.
func paginate(c *gin.Context) func(db *gorm.DB) *gorm.DB {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "50"))
	if perPage < 1 || perPage > 200 {
		perPage = 50
	}
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset((page - 1) * perPage).Limit(perPage)
	}
}

func tenantQuery(c *gin.Context, tenantID string, model interface{}) *gorm.DB {
	return database.DB.Model(model).Where("tenant_id = ?", tenantID)
}
