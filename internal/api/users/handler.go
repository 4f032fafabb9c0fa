package users

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/justmurenga/vibe-flow-point-of-sale/config"
	"github.com/justmurenga/vibe-flow-point-of-sale/database"
	"github.com/justmurenga/vibe-flow-point-of-sale/internal/domain/access"
	"github.com/justmurenga/vibe-flow-point-of-sale/internal/domain/plans"
	"github.com/justmurenga/vibe-flow-point-of-sale/internal/domain/tenants"
	"github.com/justmurenga/vibe-flow-point-of-sale/internal/domain/users"
)

func GetCurrentUser(c *gin.Context) {
	email := c.GetString("email")
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var user users.User
	if err := database.DB.Where("email = ?", email).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	now := time.Now()

	var tenant *tenants.Tenant
	if user.TenantID != nil {
		var t tenants.Tenant
		if err := database.DB.Preload("Plan").Where("id = ?", *user.TenantID).First(&t).Error; err == nil {
			tenant = &t
		}
	}

	var accessDTO AccessDTO
	if tenant != nil {
		policy := access.ComputePolicy(now, user.Role, *tenant)
		accessDTO = BuildAccessDTO(policy)
	} else {
		// Superadmins have no tenant; access is role-only.
		state := access.AccessFull
		groups := make([]string, 0)
		for _, g := range access.AllowedGroups(user.Role, state) {
			groups = append(groups, string(g))
		}
		accessDTO = AccessDTO{
			State:   string(state),
			Groups:  groups,
			Landing: access.LandingPath(user.Role, state),
		}
	}

	resp := MeResponse{
		User: UserDTO{
			ID:         user.ID,
			Email:      user.Email,
			Name:       user.Name,
			Lastname:   user.Lastname,
			Tel:        stringPtrIfNotEmpty(user.Tel),
			Role:       user.Role,
			IsVerified: user.IsVerified,
		},
		Tenant: BuildTenantDTO(tenant),
		Billing: BillingDTO{
			Plan:         BuildPlanDTO(planOf(tenant)),
			Subscription: BuildSubscriptionDTO(tenant),
			Trial:        BuildTrialDTO(now, tenant),
		},
		Access: accessDTO,
	}

	c.JSON(http.StatusOK, resp)
}

func planOf(t *tenants.Tenant) *plans.Plan {
	if t == nil {
		return nil
	}
	return t.Plan
}

func stringPtrIfNotEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func VerifyEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing token"})
		return
	}

	var t users.VerificationToken
	if err := database.DB.Where("token = ? AND type = ?", token, "email_verification").First(&t).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired token"})
		return
	}

	if err := database.DB.Model(&users.User{}).Where("id = ?", t.UserID).Update("is_verified", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify user"})
		return
	}

	_ = database.DB.Delete(&t).Error

	c.Redirect(http.StatusTemporaryRedirect, config.APP_URL+"/signin")
}
