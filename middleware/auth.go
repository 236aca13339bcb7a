package middleware

import (
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/nexon-digital/storefront-api/models"
)

// Context keys set by the auth middleware.
const (
	CtxUserID   = "user_id"
	CtxUserRole = "user_role"
)

func parseBearerToken(c *gin.Context) (jwt.MapClaims, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return nil, errors.New("authorization header is missing")
	}
	tokenString := strings.TrimPrefix(header, "Bearer ")

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

func attachIdentity(c *gin.Context, claims jwt.MapClaims) {
	if sub, ok := claims["sub"].(string); ok {
		c.Set(CtxUserID, sub)
	}
	if role, ok := claims["role"].(string); ok {
		c.Set(CtxUserRole, role)
	}
}

// RequireAuth rejects requests without a valid bearer token.
func RequireAuth(c *gin.Context) {
	claims, err := parseBearerToken(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		c.Abort()
		return
	}
	attachIdentity(c, claims)
	c.Next()
}

// OptionalAuth attaches identity when a valid token is present and lets the
// request through either way. Guest cart routes rely on it.
func OptionalAuth(c *gin.Context) {
	if claims, err := parseBearerToken(c); err == nil {
		attachIdentity(c, claims)
	}
	c.Next()
}

// RequireRoles gates a route to the given roles. Must run after RequireAuth.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, exists := c.Get(CtxUserRole)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}
		role := models.UserRole(roleVal.(string))
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		c.JSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
		c.Abort()
	}
}

// UserID returns the authenticated user id, if any.
func UserID(c *gin.Context) (string, bool) {
	val, exists := c.Get(CtxUserID)
	if !exists {
		return "", false
	}
	id, ok := val.(string)
	return id, ok && id != ""
}
