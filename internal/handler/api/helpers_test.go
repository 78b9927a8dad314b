//go:build unit

package api_test

import (
	"net/http"

	"rental-engine/internal/domain/user"

	"github.com/gin-gonic/gin"
)

// fakeAuth stands in for the JWT middleware: any bearer token authenticates as *actor.
func fakeAuth(actor *user.Actor) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		c.Set("user_id", actor.ID)
		c.Set("user_role", actor.Role)
		c.Next()
	}
}
