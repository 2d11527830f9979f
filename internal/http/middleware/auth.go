// README: Firebase ID-token auth middleware for the admin console.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"cabdesk/internal/infra"
)

const uidKey = "auth_uid"

// Auth verifies the Bearer token on every request. A nil verifier disables
// authentication (local development).
func Auth(verifier infra.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if verifier == nil {
			c.Next()
			return
		}
		header := c.GetHeader("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		token, err := verifier.VerifyIDToken(c.Request.Context(), raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set(uidKey, token.UID)
		c.Next()
	}
}

// UID returns the authenticated user id, empty when auth is disabled.
func UID(c *gin.Context) string {
	return c.GetString(uidKey)
}
