package middleware

import (
	"net/http"
	"strings"

	"spebit-service/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// JWTAuthMiddleware validates the bearer token, rejects tokens denylisted by
// logout, and stores the caller's user id in the context.
func JWTAuthMiddleware(secret string, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := utils.ParseJWT(tokenStr, secret)
		if err != nil || claims.ExpiresAt == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		if rdb != nil && claims.ID != "" {
			if n, err := rdb.Exists(c.Request.Context(), "auth:denylist:"+claims.ID).Result(); err == nil && n > 0 {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session has been signed out"})
				return
			}
		}
		c.Set("userID", claims.UserID)
		c.Set("tokenID", claims.ID)
		c.Set("tokenExpiry", claims.ExpiresAt.Time)
		c.Next()
	}
}
