package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/justmurenga/vibe-flow-point-of-sale/database"
	"github.com/justmurenga/vibe-flow-point-of-sale/internal/domain/access"
	"github.com/justmurenga/vibe-flow-point-of-sale/internal/domain/tenants"
)

// RequireRouteGroup gates a route group on the caller's role and the
// tenant's effective access state, mirroring the frontend route guards.
// Locked tenants get a 402 with the path the client should land on.
func RequireRouteGroup(group access.RouteGroup) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenant := TenantFrom(c)
		if tenant == nil {
			// Tenant admin screens reached via the app domain: load the
			// tenant from the JWT claim instead of the host.
			claimed := c.GetString("jwt_tenant_id")
			if claimed == "" {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "No store in scope"})
				return
			}
			var t tenants.Tenant
			if err := database.DB.Preload("Plan").Where("id = ?", claimed).First(&t).Error; err != nil {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Store not found"})
				return
			}
			tenant = &t
			c.Set(tenantContextKey, tenant)
		}

		role := c.GetString("role")
		state := access.ComputeEffectiveAccessState(time.Now(), *tenant)

		redirect, ok := access.RedirectFor(role, state, group)
		if !ok {
			status := http.StatusForbidden
			if state == access.AccessLocked {
				status = http.StatusPaymentRequired
			}
			c.AbortWithStatusJSON(status, gin.H{
				"error":    "Access denied",
				"state":    string(state),
				"redirect": redirect,
			})
			return
		}
		c.Next()
	}
}
