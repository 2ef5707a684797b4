package middleware

import (
	"net/http"
	"strings"

	"github.com/VineethSendilraj/COPilot/services"
	"github.com/gin-gonic/gin"
)

const UserIDKey = "user_id"

// AuthMiddleware verifies the Bearer token on every protected route and
// stashes the caller's UID on the gin context.
func AuthMiddleware(firebaseService *services.FirebaseService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == authHeader {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization format"})
			c.Abort()
			return
		}

		decodedToken, err := firebaseService.Auth.VerifyIDToken(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		c.Set(UserIDKey, decodedToken.UID)
		c.Next()
	}
}

func GetUserID(c *gin.Context) string {
	userID, _ := c.Get(UserIDKey)
	if id, ok := userID.(string); ok {
		return id
	}
	return ""
}
