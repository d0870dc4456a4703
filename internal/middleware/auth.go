package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/angple/arena-backend/internal/common"
	"github.com/angple/arena-backend/internal/domain"
	"github.com/angple/arena-backend/pkg/jwt"
	"github.com/gin-gonic/gin"
)

// Context keys set by the auth middleware
const (
	ctxUserID   = "userID"
	ctxUsername = "username"
	ctxRole     = "role"
)

// JWTAuth JWT authentication middleware
func JWTAuth(jwtManager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			common.ErrorResponse(c, http.StatusUnauthorized, "Missing or malformed authorization header", nil)
			c.Abort()
			return
		}

		claims, err := jwtManager.VerifyToken(tokenString)
		if err != nil {
			if errors.Is(err, jwt.ErrExpiredToken) {
				common.ErrorResponse(c, http.StatusUnauthorized, "Token expired", nil)
			} else {
				common.ErrorResponse(c, http.StatusUnauthorized, "Invalid token", nil)
			}
			c.Abort()
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// OptionalJWTAuth sets the caller when a valid token is present and never rejects
func OptionalJWTAuth(jwtManager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString, ok := bearerToken(c); ok {
			if claims, err := jwtManager.VerifyToken(tokenString); err == nil {
				setClaims(c, claims)
			}
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

func setClaims(c *gin.Context, claims *jwt.Claims) {
	c.Set(ctxUserID, claims.GetUserID())
	c.Set(ctxUsername, claims.Username)
	role := domain.Role(claims.Role)
	if role == "" {
		role = domain.RoleUser
	}
	c.Set(ctxRole, role)
}

// GetUserID extracts user ID from context
func GetUserID(c *gin.Context) string {
	return c.GetString(ctxUserID)
}

// GetUsername extracts the username claim from context
func GetUsername(c *gin.Context) string {
	return c.GetString(ctxUsername)
}

// GetUserRole extracts the role claim from context
func GetUserRole(c *gin.Context) domain.Role {
	if v, ok := c.Get(ctxRole); ok {
		if role, ok := v.(domain.Role); ok {
			return role
		}
	}
	return ""
}

// GetActor returns the authenticated caller
func GetActor(c *gin.Context) domain.Actor {
	return domain.Actor{
		UserID:   GetUserID(c),
		Username: GetUsername(c),
		Role:     GetUserRole(c),
	}
}
