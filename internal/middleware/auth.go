// internal/middleware/auth.go
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/tokenmart/ledger-backend/internal/models"
	"github.com/tokenmart/ledger-backend/internal/utils"
)

// AuthRequired validates the bearer token minted by the wallet-auth layer
// and exposes the caller's account and role to handlers.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "authentication required",
			})
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "invalid authorization header",
			})
			c.Abort()
			return
		}

		claims, err := utils.ValidateJWT(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set("account", claims.Account)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// OwnerRequired restricts a route to the platform-owner role. Must run
// after AuthRequired.
func OwnerRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists || role != string(models.RoleOwner) {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "platform owner access required",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// OracleAuth guards the purchase-verification endpoint with the decryption
// oracle's API key. The key is held as a bcrypt hash so a leaked config
// never exposes the credential itself.
func OracleAuth(keyHash string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("X-API-Key")
		if keyHash == "" || key == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "oracle API key required",
			})
			c.Abort()
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(keyHash), []byte(key)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "invalid oracle API key",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
