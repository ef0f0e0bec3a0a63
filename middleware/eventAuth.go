package middleware

import (
	"net/http"

	"accountcleanup/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// EventAuthMiddleware verifies the HS256 bearer token attached to pushed auth events.
func EventAuthMiddleware(secret []byte, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}

		claims, err := utils.ValidateEventToken(secret, tokenString)
		if err != nil {
			logger.Warn("rejected event delivery", zap.String("ip", getClientIP(c)), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid event token"})
			return
		}

		c.Set("eventSender", claims.Subject)
		c.Next()
	}
}
