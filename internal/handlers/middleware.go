package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"example.com/glams-api/internal/service"
)

const claimsKey = "adminClaims"

// RequireAdmin guards the back-office routes. The decoded claims land in the
// gin context for downstream handlers.
func RequireAdmin(auth service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Access token is required",
			})
			return
		}
		claims, err := auth.ParseToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			msg := "Invalid token"
			if errors.Is(err, service.ErrTokenExpired) {
				msg = "Token has expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": msg,
			})
			return
		}
		c.Set(claimsKey, claims)
		c.Next()
	}
}

func adminClaims(c *gin.Context) (service.AdminClaims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return service.AdminClaims{}, false
	}
	claims, ok := v.(service.AdminClaims)
	return claims, ok
}
