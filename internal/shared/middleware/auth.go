package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"eversol-backend/internal/shared/response"
	"eversol-backend/pkg/jwt"
)

// Context keys set by Auth.
const (
	ContextKeyUserID = "userID"
	ContextKeyEmail  = "email"
	ContextKeyRole   = "role"
)

// TokenCookieName is the fallback credential location when no Authorization
// header is present.
const TokenCookieName = "token"

// Auth validates the request's JWT, taken from the Authorization bearer
// header or the token cookie, and puts the claims into the context.
func Auth(manager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			response.Unauthorized(c, "Not authorized, no token")
			c.Abort()
			return
		}

		claims, err := manager.ValidateToken(token)
		if err != nil {
			response.Unauthorized(c, "Not authorized, token failed")
			c.Abort()
			return
		}

		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyEmail, claims.Email)
		c.Set(ContextKeyRole, claims.Role)
		c.Next()
	}
}

// AdminOnly rejects requests whose authenticated role is not admin. It must
// run after Auth.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextKeyRole)
		if role != "admin" {
			response.Forbidden(c, "Not authorized as an admin")
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetUserID returns the authenticated user id set by Auth.
func GetUserID(c *gin.Context) string {
	return c.GetString(ContextKeyUserID)
}

func extractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}

	cookie, err := c.Cookie(TokenCookieName)
	if err != nil {
		return ""
	}
	return cookie
}
