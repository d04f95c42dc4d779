package middlewares

import (
	"context"
	"net/http"
	"strings"

	"image_table_api/tools"
	"image_table_api/types"

	"cloud.google.com/go/logging"
	"firebase.google.com/go/auth"
	"github.com/gin-gonic/gin"
)

// TokenVerifier verifies Firebase ID tokens; satisfied by *auth.Client.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// Middleware to authenticate users.
func AuthMiddleware(logger tools.Logger, verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		idToken := extractToken(c)
		if idToken == "" {
			logger.Log(logging.Entry{
				Severity: logging.Warning,
				Payload:  "Unauthorized - No ID token provided",
			})

			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized - No ID token provided"})
			return
		}

		decodedToken, err := verifier.VerifyIDToken(c.Request.Context(), idToken)
		if err != nil {
			logger.Log(logging.Entry{
				Severity: logging.Warning,
				Payload:  "Unauthorized - Invalid ID token: " + err.Error(),
			})

			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized - Invalid ID token"})
			return
		}

		c.Set(types.CONTEXT_USER_KEY, UserFromToken(decodedToken))
		c.Next()
	}
}

// UserFromToken reads the signed-in user from the standard ID token claims.
func UserFromToken(token *auth.Token) *types.User {
	name, _ := token.Claims["name"].(string)
	email, _ := token.Claims["email"].(string)

	return &types.User{
		UID:         token.UID,
		DisplayName: name,
		Email:       email,
	}
}

// CurrentUser returns the user stored by AuthMiddleware.
func CurrentUser(c *gin.Context) (*types.User, bool) {
	value, exists := c.Get(types.CONTEXT_USER_KEY)
	if !exists {
		return nil, false
	}
	user, ok := value.(*types.User)
	return user, ok
}

// Extracts token from the Authorization header or cookie.
func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	// Firebase Hosting only forwards this cookie
	if cookie, err := c.Cookie("__session"); err == nil {
		return cookie
	}
	return ""
}
