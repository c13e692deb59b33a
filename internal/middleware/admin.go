package middleware

import (
	"net/http"

	"spebit-service/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AdminOnlyMiddleware checks for an admin role row on every request. Role
// grants take effect without re-login, revocations likewise.
func AdminOnlyMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID")
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var role models.UserRole
		err := db.Where("user_id = ? AND role = ?", userID, models.RoleAdmin).First(&role).Error
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}
