package middleware

import (
	"errors"
	"net/http"
	"strings"

	"gaia_backend/internal/service"

	"github.com/gin-gonic/gin"
)

// JWT authenticates requests via "Authorization: Bearer <token>" and puts
// the verified claims into the gin context for downstream handlers.
func JWT() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			AuthFailures.WithLabelValues("missing_token").Inc()
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "token required"})
			return
		}

		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenString == "" {
			AuthFailures.WithLabelValues("bad_header").Inc()
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid authorization header"})
			return
		}

		claims, err := service.ParseJWT(tokenString)
		if err != nil {
			status := http.StatusUnauthorized
			reason := "invalid_token"
			if errors.Is(err, service.ErrExpiredToken) {
				status = http.StatusForbidden
				reason = "expired_token"
			}
			AuthFailures.WithLabelValues(reason).Inc()
			c.AbortWithStatusJSON(status, gin.H{"success": false, "message": err.Error()})
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("username", claims.Username)
		c.Next()
	}
}
