// Package middleware provides HTTP middleware for the API.
package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the service key presented as a Bearer token.
// Orchestrator and agent callers authenticate with a shared key.
type AuthMiddleware struct {
	serviceKey string
}

// NewAuthMiddleware creates a new AuthMiddleware. An empty service key
// disables authentication; intended for local development only.
func NewAuthMiddleware(serviceKey string) *AuthMiddleware {
	return &AuthMiddleware{
		serviceKey: serviceKey,
	}
}

// Authenticate returns a gin middleware that validates the Bearer token
// against the configured service key.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.serviceKey == "" {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    "UNAUTHORIZED",
				"message": "missing authorization header",
			})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    "UNAUTHORIZED",
				"message": "invalid authorization header format",
			})
			return
		}

		token := parts[1]
		if subtle.ConstantTimeCompare([]byte(token), []byte(m.serviceKey)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    "UNAUTHORIZED",
				"message": "invalid service key",
			})
			return
		}

		c.Next()
	}
}
