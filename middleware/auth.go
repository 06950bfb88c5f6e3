package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"slotify/utils"
)

// JWTAuthTenantMiddleware validates the bearer token on tenant-facing routes
// and stores the tenant ID in the request context.
func JWTAuthTenantMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		tenantID, err := utils.ExtractTenantFromToken(tokenString)
		if err != nil || tenantID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		c.Set("tenantID", tenantID)
		c.Next()
	}
}
