package users

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/justmurenga/vibe-flow-point-of-sale/database"
	"github.com/justmurenga/vibe-flow-point-of-sale/internal/domain/logs"
	"github.com/justmurenga/vibe-flow-point-of-sale/internal/domain/users"
)

type TeamMember struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	Lastname   string `json:"lastname"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	IsVerified bool   `json:"is_verified"`
	IsActive   bool   `json:"is_active"`
}

func callerTenantID(c *gin.Context) (string, bool) {
	tenantID := c.GetString("jwt_tenant_id")
	if tenantID == "" {
		c.JSON(http.StatusForbidden, gin.H{"error": "No store in scope"})
		return "", false
	}
	return tenantID, true
}

// GET /team
func ListTeam(c *gin.Context) {
	tenantID, ok := callerTenantID(c)
	if !ok {
		return
	}

	var members []users.User
	if err := database.DB.Where("tenant_id = ?", tenantID).Order("id").Find(&members).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load team"})
		return
	}

	out := make([]TeamMember, 0, len(members))
	for _, m := range members {
		out = append(out, TeamMember{
			ID:         m.ID,
			Name:       m.Name,
			Lastname:   m.Lastname,
			Email:      m.Email,
			Role:       m.Role,
			IsVerified: m.IsVerified,
			IsActive:   m.IsActive,
		})
	}
	c.JSON(http.StatusOK, out)
}

// POST /team/invite
// Creates a user in the caller's tenant with a temporary password. The
// invitee resets it through the normal password-reset flow.
func InviteTeamMember(c *gin.Context) {
	tenantID, ok := callerTenantID(c)
	if !ok {
		return
	}

	var input struct {
		Name     string `json:"name" binding:"required"`
		Lastname string `json:"lastname"`
		Email    string `json:"email" binding:"required,email"`
		Role     string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !users.IsValidRole(input.Role) || input.Role == users.RoleSuperadmin {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
		return
	}

	tempBytes := make([]byte, 12)
	rand.Read(tempBytes)
	hashed, err := bcrypt.GenerateFromPassword([]byte(hex.EncodeToString(tempBytes)), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create invite"})
		return
	}
	pw := string(hashed)

	member := users.User{
		Name:         input.Name,
		Lastname:     input.Lastname,
		Email:        input.Email,
		Password:     &pw,
		AuthProvider: "local",
		TenantID:     &tenantID,
		Role:         input.Role,
		IsVerified:   true, // invited by their admin
	}
	if err := database.DB.Create(&member).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email may already exist"})
		return
	}

	inviterID := c.GetUint("user_id")
	logs.Record(database.DB, logs.LevelInfo, "team",
		"invited "+input.Email+" as "+input.Role, &tenantID, &inviterID)

	c.JSON(http.StatusOK, gin.H{"message": "User invited. Ask them to set a password via the reset flow.", "id": member.ID})
}

// PUT /team/:id/role
func ChangeTeamRole(c *gin.Context) {
	tenantID, ok := callerTenantID(c)
	if !ok {
		return
	}

	var input struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !users.IsValidRole(input.Role) || input.Role == users.RoleSuperadmin {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
		return
	}

	var member users.User
	if err := database.DB.Where("id = ? AND tenant_id = ?", c.Param("id"), tenantID).First(&member).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found in this store"})
		return
	}

	if member.ID == c.GetUint("user_id") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot change your own role"})
		return
	}

	if err := database.DB.Model(&member).Update("role", input.Role).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update role"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Role updated"})
}

// POST /team/:id/deactivate
// Accounts are deactivated, never deleted.
func DeactivateTeamMember(c *gin.Context) {
	tenantID, ok := callerTenantID(c)
	if !ok {
		return
	}

	var member users.User
	if err := database.DB.Where("id = ? AND tenant_id = ?", c.Param("id"), tenantID).First(&member).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found in this store"})
		return
	}

	if member.ID == c.GetUint("user_id") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot deactivate yourself"})
		return
	}

	if err := database.DB.Model(&member).Update("is_active", false).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deactivated"})
}
