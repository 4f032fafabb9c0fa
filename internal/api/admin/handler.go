package admin

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/justmurenga/vibe-flow-point-of-sale/config"
	"github.com/justmurenga/vibe-flow-point-of-sale/database"
	"github.com/justmurenga/vibe-flow-point-of-sale/internal/domain/billing"
	"github.com/justmurenga/vibe-flow-point-of-sale/internal/domain/logs"
	"github.com/justmurenga/vibe-flow-point-of-sale/internal/domain/tenants"
	"github.com/justmurenga/vibe-flow-point-of-sale/internal/domain/users"
)

// Resolver is set from main so domain changes invalidate cached lookups.
var Resolver *tenants.Resolver

type AdminTenant struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Subdomain     string     `json:"subdomain"`
	CustomDomain  *string    `json:"custom_domain,omitempty"`
	Status        string     `json:"status"`
	PlanName      *string    `json:"plan_name,omitempty"`
	TrialEndAt    *time.Time `json:"trial_end_at,omitempty"`
	ProvisionedAt *time.Time `json:"provisioned_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

type PlatformStats struct {
	TotalTenants    int            `json:"total_tenants"`
	TenantsByStatus map[string]int `json:"tenants_by_status"`
	TotalUsers      int            `json:"total_users"`
	TotalRevenue    float64        `json:"total_revenue"`
	RecentRevenue   float64        `json:"recent_revenue"`
	TenantsPerPlan  map[string]int `json:"tenants_per_plan"`
}

func SuperadminDashboard(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome to the superadmin console 👑",
	})
}

func ListTenants(c *gin.Context) {
	var rows []tenants.Tenant
	if err := database.DB.Preload("Plan").Order("created_at DESC").Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load tenants"})
		return
	}

	out := make([]AdminTenant, 0, len(rows))
	for _, t := range rows {
		var planName *string
		if t.Plan != nil {
			planName = &t.Plan.Name
		}
		out = append(out, AdminTenant{
			ID:            t.ID,
			Name:          t.Name,
			Subdomain:     t.Subdomain,
			CustomDomain:  t.CustomDomain,
			Status:        t.Status,
			PlanName:      planName,
			TrialEndAt:    t.TrialEndAt,
			ProvisionedAt: t.ProvisionedAt,
			CreatedAt:     t.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, out)
}

func GetTenantDetails(c *gin.Context) {
	tenantID := c.Param("id")

	var tenant tenants.Tenant
	if err := database.DB.Preload("Plan").Where("id = ?", tenantID).First(&tenant).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tenant not found"})
		return
	}

	var members []users.User
	if err := database.DB.Where("tenant_id = ?", tenantID).Find(&members).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	var payments []billing.Payment
	if err := database.DB.Preload("Plan").Where("tenant_id = ?", tenantID).
		Order("created_at DESC").Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tenant":   tenant,
		"users":    members,
		"payments": payments,
	})
}

// POST /superadmin/tenants/:id/status  {"status": "active"|"suspended"|"cancelled"}
// There is no delete; lifecycle is status-only.
func SetTenantStatus(c *gin.Context) {
	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	switch input.Status {
	case tenants.StatusActive, tenants.StatusSuspended, tenants.StatusCancelled:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	var tenant tenants.Tenant
	if err := database.DB.Where("id = ?", c.Param("id")).First(&tenant).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tenant not found"})
		return
	}

	if err := database.DB.Model(&tenant).Update("status", input.Status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update status"})
		return
	}

	invalidateTenantHosts(c, &tenant)

	adminID := c.GetUint("user_id")
	logs.Record(database.DB, logs.LevelWarn, "superadmin",
		"tenant "+tenant.Name+" status -> "+input.Status, &tenant.ID, &adminID)

	c.JSON(http.StatusOK, gin.H{"message": "Tenant status updated", "status": input.Status})
}

// PUT /superadmin/tenants/:id/domain  {"custom_domain": "shop.example.com"}
func SetTenantCustomDomain(c *gin.Context) {
	var input struct {
		CustomDomain string `json:"custom_domain"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var tenant tenants.Tenant
	if err := database.DB.Where("id = ?", c.Param("id")).First(&tenant).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tenant not found"})
		return
	}

	oldDomain := tenant.CustomDomain

	normalized := tenants.NormalizeHost(input.CustomDomain)
	var update interface{}
	if normalized == "" {
		update = nil
	} else {
		update = normalized
	}
	if err := database.DB.Model(&tenant).Update("custom_domain", update).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Domain may already be in use"})
		return
	}

	if Resolver != nil {
		if oldDomain != nil {
			Resolver.Invalidate(c.Request.Context(), *oldDomain)
		}
		if normalized != "" {
			Resolver.Invalidate(c.Request.Context(), normalized)
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Custom domain updated"})
}

func GetPlatformStats(c *gin.Context) {
	var stats PlatformStats

	var totalTenants, totalUsers int64
	var totalRevenue, recentRevenue float64

	database.DB.Model(&tenants.Tenant{}).Count(&totalTenants)
	database.DB.Model(&users.User{}).Count(&totalUsers)
	database.DB.Model(&billing.Payment{}).Where("status = ?", "paid").
		Select("COALESCE(SUM(amount_usd), 0)").Scan(&totalRevenue)

	thirtyDaysAgo := time.Now().AddDate(0, 0, -30)
	database.DB.Model(&billing.Payment{}).
		Where("status = ? AND created_at >= ?", "paid", thirtyDaysAgo).
		Select("COALESCE(SUM(amount_usd), 0)").Scan(&recentRevenue)

	stats.TotalTenants = int(totalTenants)
	stats.TotalUsers = int(totalUsers)
	stats.TotalRevenue = totalRevenue
	stats.RecentRevenue = recentRevenue

	type StatusCount struct {
		Status string
		Count  int
	}
	var statusCounts []StatusCount
	database.DB.Model(&tenants.Tenant{}).
		Select("status, COUNT(id) as count").
		Group("status").
		Scan(&statusCounts)

	stats.TenantsByStatus = map[string]int{}
	for _, sc := range statusCounts {
		stats.TenantsByStatus[sc.Status] = sc.Count
	}

	type PlanCount struct {
		Name  *string
		Count int
	}
	var planCounts []PlanCount
	database.DB.
		Table("tenants").
		Select("plans.name, COUNT(tenants.id) as count").
		Joins("LEFT JOIN plans ON tenants.plan_id = plans.id").
		Group("plans.name").
		Scan(&planCounts)

	stats.TenantsPerPlan = map[string]int{}
	for _, pc := range planCounts {
		name := "No Plan"
		if pc.Name != nil {
			name = *pc.Name
		}
		stats.TenantsPerPlan[name] = pc.Count
	}

	c.JSON(http.StatusOK, stats)
}

// GET /superadmin/logs?level=error&limit=100
func ListSystemLogs(c *gin.Context) {
	limit := 100
	q := database.DB.Model(&logs.SystemLog{}).Order("created_at DESC").Limit(limit)
	if level := c.Query("level"); level != "" {
		q = q.Where("level = ?", level)
	}
	if tenantID := c.Query("tenant_id"); tenantID != "" {
		q = q.Where("tenant_id = ?", tenantID)
	}

	var rows []logs.SystemLog
	if err := q.Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load logs"})
		return
	}
	c.JSON(http.StatusOK, rows)
}

func invalidateTenantHosts(c *gin.Context, t *tenants.Tenant) {
	if Resolver == nil {
		return
	}
	Resolver.Invalidate(c.Request.Context(), t.Subdomain+"."+config.BASE_DOMAIN)
	if t.CustomDomain != nil {
		Resolver.Invalidate(c.Request.Context(), *t.CustomDomain)
	}
}
