package middleware

import (
	"strings"

	"firewatch/internal/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the bearer token and stores the caller's identity
// in the request context.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			utils.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			utils.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(token, jwtSecret)
		if err != nil {
			utils.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_role", claims.Role)
		c.Set("user_email", claims.Email)
		c.Next()
	}
}

// RequireRole allows the request through only when the authenticated caller
// holds one of the listed roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get("user_role")
		if !exists {
			utils.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		role, _ := value.(string)
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		utils.ForbiddenResponse(c)
		c.Abort()
	}
}
