package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// tokenKey is the context key the bearer token is stored under.
const tokenKey = "bearerToken"

// BearerToken extracts the bearer token from the Authorization header, or
// from the ?token= query parameter for download links. It never aborts:
// ingestion tolerates an unverifiable token, so rejection is left to the
// operations that require a resolved owner.
func BearerToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string

		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				token = parts[1]
			}
		}

		if token == "" {
			token = c.Query("token")
		}

		c.Set(tokenKey, token)
		c.Next()
	}
}

// Token returns the bearer token extracted by BearerToken, possibly empty.
func Token(c *gin.Context) string {
	return c.GetString(tokenKey)
}
