package middleware

import (
	"banking_api/internal/service" // Token resolution
	"net/http"                     // HTTP status codes
	"strings"                      // String manipulation

	"github.com/gin-gonic/gin" // Gin web framework
)

// UserKey is the Gin context key under which the authenticated user is stored.
const UserKey = "user"

// JWTAuthMiddleware is the single gate in front of every account operation:
// it extracts the bearer token, resolves it to a user via the auth service,
// and aborts with 401 plus a WWW-Authenticate challenge on any failure.
func JWTAuthMiddleware(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		// Check if the Authorization header is present and properly formatted
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.Header("WWW-Authenticate", "Bearer")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ") // Extract the token string
		user, err := auth.Authenticate(c.Request.Context(), tokenStr)
		if err != nil {
			// Invalid signature, expired token, missing subject, or the
			// subject user no longer exists.
			c.Header("WWW-Authenticate", "Bearer")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Could not validate credentials"})
			return
		}
		c.Set(UserKey, user) // Store the resolved user in context
		c.Next()             // Proceed to the next handler
	}
}
