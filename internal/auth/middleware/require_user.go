package middleware

import (
	"context"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"

	"github.com/synkro-platform/synkro-backend/internal/users/domain"
)

// UserResolver maps a verified auth identity to the platform user record.
type UserResolver interface {
	FindByFirebaseUID(ctx context.Context, uid string) (*domain.User, error)
}

// RequireUser validates the Firebase ID token and resolves the platform
// user behind it. Downstream handlers read the document id via
// c.GetString("user_id") — the same identifier the graph is keyed on.
func RequireUser(authClient *auth.Client, users UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization token"})
			c.Abort()
			return
		}

		decoded, err := authClient.VerifyIDToken(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		u, err := users.FindByFirebaseUID(c.Request.Context(), decoded.UID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unknown user"})
			c.Abort()
			return
		}

		c.Set("firebase_uid", decoded.UID)
		c.Set("user_id", u.ID.Hex())
		c.Set("username", u.Username)

		c.Next()
	}
}

// extractToken extracts the Bearer token from the Authorization header
func extractToken(c *gin.Context) string {
	bearerToken := c.GetHeader("Authorization")
	if len(bearerToken) > 7 && strings.HasPrefix(bearerToken, "Bearer ") {
		return bearerToken[7:]
	}
	return ""
}
