package middleware

import (
	"net/http"
	"strings"

	"github.com/waste3d/learnpath-api/internal/domain"

	"github.com/gin-gonic/gin"
)

const (
	UserIDKey       = "userId"
	AnonymousHeader = "X-Anonymous-Id"
)

type TokenValidator interface {
	ValidateAccessToken(token string) (string, error)
}

// AuthMiddleware resolves the caller's user id from a bearer token, falling back to an
// anonymous id issued earlier by the service.
func AuthMiddleware(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid authorization header format"})
				return
			}

			userID, err := tokens.ValidateAccessToken(parts[1])
			if err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid or expired token"})
				return
			}

			c.Set(UserIDKey, userID)
			c.Next()
			return
		}

		anon := c.GetHeader(AnonymousHeader)
		if strings.HasPrefix(anon, domain.AnonymousIDPrefix) && len(anon) > len(domain.AnonymousIDPrefix) {
			c.Set(UserIDKey, anon)
			c.Next()
			return
		}

		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Authorization header is required"})
	}
}
