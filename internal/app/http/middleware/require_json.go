package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireJSON rejects requests whose Content-Type is not application/json.
// Parameters such as charset are allowed.
func RequireJSON() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.ContentType() != gin.MIMEJSON {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Data must be sent as JSON"})
			return
		}
		c.Next()
	}
}
