package middleware

import (
	"net/http"
	"strings"

	"github.com/Kawaii2025/interview-qa-app/internal/dto"
	"github.com/gin-gonic/gin"
)

// BearerAuth checks a static bearer token on generation routes. Real user
// authentication lives in an external collaborator; this only keeps the
// provider-cost-incurring endpoints from being anonymous. A no-op when no
// token is configured.
func BearerAuth(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			c.Next()
			return
		}
		header := c.GetHeader("Authorization")
		provided := strings.TrimPrefix(header, "Bearer ")
		if provided == "" || provided == header {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Missing bearer token"})
			return
		}
		if provided != token {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Invalid bearer token"})
			return
		}
		c.Next()
	}
}
