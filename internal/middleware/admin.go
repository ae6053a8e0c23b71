package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminRequired gates a route to administrator accounts.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAdmin(c) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "error": gin.H{"code": "AUTHORIZATION_ERROR", "message": "admin access required"}})
			return
		}
		c.Next()
	}
}
