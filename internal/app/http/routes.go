package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	adminapi "github.com/justmurenga/vibe-flow-point-of-sale/internal/api/admin"
	authapi "github.com/justmurenga/vibe-flow-point-of-sale/internal/api/auth"
	"github.com/justmurenga/vibe-flow-point-of-sale/internal/api/billing"
	"github.com/justmurenga/vibe-flow-point-of-sale/internal/api/plans"
	posapi "github.com/justmurenga/vibe-flow-point-of-sale/internal/api/pos"
	stripewebhooks "github.com/justmurenga/vibe-flow-point-of-sale/internal/api/stripewebhook"
	"github.com/justmurenga/vibe-flow-point-of-sale/internal/api/users"
	"github.com/justmurenga/vibe-flow-point-of-sale/internal/app/http/middleware"
	"github.com/justmurenga/vibe-flow-point-of-sale/internal/domain/access"
	"github.com/justmurenga/vibe-flow-point-of-sale/internal/domain/tenants"
	domusers "github.com/justmurenga/vibe-flow-point-of-sale/internal/domain/users"
	"github.com/justmurenga/vibe-flow-point-of-sale/internal/metrics"
)

func RegisterRoutes(r *gin.Engine, resolver *tenants.Resolver) {
	r.POST("/webhook", stripewebhooks.StripeWebhook)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Host-based tenant resolution applies to everything below.
	r.Use(middleware.ResolveTenant(resolver))

	// Public storefront probe: which store does this host belong to?
	r.GET("/store", middleware.RequireTenant(), func(c *gin.Context) {
		tenant := middleware.TenantFrom(c)
		c.JSON(200, gin.H{
			"name":      tenant.Name,
			"subdomain": tenant.Subdomain,
			"status":    tenant.Status,
		})
	})

	limiter := middleware.NewRateLimiter(5, 10)
	limiter.StartCleanup(10 * time.Minute)

	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware(), limiter.Handler())

	public.POST("/register", authapi.Register)
	public.POST("/login", authapi.Login)
	public.GET("/plans", plans.ListPlans)
	public.GET("/verify", users.VerifyEmail)
	public.POST("/resend-verification", authapi.ResendVerification)
	public.POST("/request-password-reset", authapi.RequestPasswordReset)
	public.POST("/reset-password", authapi.ResetPassword)

	public.GET("/auth/google", authapi.GoogleStart)
	public.GET("/auth/google/callback", authapi.GoogleCallback)

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware())
	auth.GET("/me", users.GetCurrentUser)
	auth.POST("/change-password", authapi.ChangePassword)

	// Billing screens: admins only, reachable even when locked.
	billingGroup := auth.Group("/")
	billingGroup.Use(
		middleware.RequireAnyRole(domusers.RoleAdmin),
		middleware.RequireTenantMatch(),
		middleware.RequireRouteGroup(access.GroupBilling),
	)
	billingGroup.GET("/payments", billing.GetPaymentHistory)
	billingGroup.POST("/create-checkout-session", billing.CreateCheckoutSession)
	billingGroup.POST("/billing-portal", billing.CreateBillingPortal)
	billingGroup.POST("/change-plan", billing.ChangePlan)

	// POS screens: cashiers and up.
	pos := auth.Group("/")
	pos.Use(
		middleware.RequireAnyRole(domusers.RoleAdmin, domusers.RoleManager, domusers.RoleCashier),
		middleware.RequireTenantMatch(),
		middleware.RequireRouteGroup(access.GroupPOS),
	)
	pos.GET("/products", posapi.ListProducts)
	pos.GET("/products/:id", posapi.GetProduct)
	pos.GET("/customers", posapi.ListCustomers)
	pos.GET("/customers/:id", posapi.GetCustomer)
	pos.POST("/customers", posapi.CreateCustomer)
	pos.GET("/payment-methods", posapi.ListPaymentMethods)
	pos.GET("/sales", posapi.ListSales)
	pos.GET("/sales/:id", posapi.GetSale)
	pos.POST("/sales", posapi.CreateSale)

	// Management screens: admins and managers.
	manage := auth.Group("/")
	manage.Use(
		middleware.RequireAnyRole(domusers.RoleAdmin, domusers.RoleManager),
		middleware.RequireTenantMatch(),
		middleware.RequireRouteGroup(access.GroupAdmin),
	)
	manage.POST("/products", posapi.CreateProduct)
	manage.PUT("/products/:id", posapi.UpdateProduct)
	manage.POST("/products/:id/restock", posapi.RestockProduct)
	manage.POST("/products/:id/archive", posapi.ArchiveProduct)
	manage.GET("/products/:id/movements", posapi.ListStockMovements)
	manage.PUT("/customers/:id", posapi.UpdateCustomer)
	manage.POST("/customers/:id/archive", posapi.ArchiveCustomer)
	manage.POST("/payment-methods", posapi.CreatePaymentMethod)
	manage.POST("/payment-methods/:id/disable", posapi.DisablePaymentMethod)
	manage.POST("/sales/:id/void", posapi.VoidSale)

	// Team management: admins only.
	team := auth.Group("/")
	team.Use(
		middleware.RequireAnyRole(domusers.RoleAdmin),
		middleware.RequireTenantMatch(),
		middleware.RequireRouteGroup(access.GroupAdmin),
	)
	team.GET("/team", users.ListTeam)
	team.POST("/team/invite", users.InviteTeamMember)
	team.PUT("/team/:id/role", users.ChangeTeamRole)
	team.POST("/team/:id/deactivate", users.DeactivateTeamMember)

	// Superadmin console
	superadmin := r.Group("/superadmin")
	superadmin.Use(middleware.AuthMiddleware(), middleware.RequireRole(domusers.RoleSuperadmin))
	superadmin.GET("/dashboard", adminapi.SuperadminDashboard)
	superadmin.GET("/tenants", adminapi.ListTenants)
	superadmin.GET("/tenants/:id", adminapi.GetTenantDetails)
	superadmin.POST("/tenants/:id/status", adminapi.SetTenantStatus)
	superadmin.PUT("/tenants/:id/domain", adminapi.SetTenantCustomDomain)
	superadmin.GET("/stats", adminapi.GetPlatformStats)
	superadmin.GET("/logs", adminapi.ListSystemLogs)
	superadmin.POST("/sync-plans", plans.SyncPlansFromStripe)
}
