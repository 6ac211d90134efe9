package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"chatbot-backend/internal/auth"
)

const UserIDKey = "user_id"

// AuthRequired rejects the request with 401 before any store access when the
// bearer token is missing, malformed, or fails validation. All failure modes
// look the same to the client.
func AuthRequired(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		const prefix = "Bearer "
		if header == "" || !strings.HasPrefix(header, prefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token inválido"})
			return
		}

		userID, err := auth.ParseJWT(strings.TrimPrefix(header, prefix), secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token inválido"})
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}
