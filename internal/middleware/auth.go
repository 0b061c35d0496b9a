// Package middleware holds the gin middleware chain: admin session auth,
// CORS, per-IP rate limiting, and request observability.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/carepulse/carepulse-api/pkg/auth"
)

// RequireAdmin guards the admin surface. The client must present the
// session token minted by the access gate as a bearer token; the locally
// stored passkey alone grants nothing here.
func RequireAdmin(jwt *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing session token"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "malformed authorization header"})
			return
		}

		if err := jwt.ValidateSession(parts[1]); err != nil {
			status := http.StatusUnauthorized
			msg := "invalid session token"
			if err == auth.ErrTokenExpired {
				msg = "session expired"
			}
			c.AbortWithStatusJSON(status, gin.H{"error": msg})
			return
		}

		c.Next()
	}
}
