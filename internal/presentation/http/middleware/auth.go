package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kvittoapp/kvitto-api/internal/presentation/http/dto/response"
	"github.com/kvittoapp/kvitto-api/pkg/utils"
)

// AuthMiddleware creates a JWT authentication middleware
func AuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		// Set user info in context. The company claims select the SIE
		// ledger the session may read.
		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)
		c.Set("company_name", claims.CompanyName)
		c.Set("database_number", claims.DatabaseNumber)

		c.Next()
	}
}
