package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AdminAuthMiddleware checks the bearer key against the configured bcrypt hash
func AdminAuthMiddleware(keyHash string, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if keyHash == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "admin access is not configured"})
			return
		}

		authHeader := c.GetHeader("Authorization")
		apiKey, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found || strings.TrimSpace(apiKey) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing API key"})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(keyHash), []byte(strings.TrimSpace(apiKey))); err != nil {
			logger.Warn("Rejected admin API key", zap.String("client_ip", c.ClientIP()))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid API key"})
			return
		}

		c.Next()
	}
}
