package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/trendy-shop/auth"
)

// Context keys set by ValidateToken.
const (
	UserIDKey = "user_id"
	EmailKey  = "email"
)

// ValidateToken requires a bearer token. A missing token is 401, a token that
// fails verification is 403.
func ValidateToken(tm *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenString := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if header == "" || tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Access token required"})
			return
		}
		authorize(c, tm, tokenString)
	}
}

// ValidateQueryToken reads the token from ?token= for clients such as browsers
// opening a websocket, which cannot set headers.
func ValidateQueryToken(tm *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.Query("token")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Access token required"})
			return
		}
		authorize(c, tm, tokenString)
	}
}

func authorize(c *gin.Context, tm *auth.TokenManager, tokenString string) {
	claims, err := tm.Verify(tokenString)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Invalid token"})
		return
	}

	c.Set(UserIDKey, claims.UserID)
	c.Set(EmailKey, claims.Email)
	c.Next()
}

// UserID returns the authenticated caller set by ValidateToken.
func UserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}
