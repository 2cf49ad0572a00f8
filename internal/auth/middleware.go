package auth

import (
	"errors"
	"net/http"
	"strings"

	"gymgate/internal/api"

	"github.com/gin-gonic/gin"
)

const (
	ctxUserID    = "user_id"
	ctxUserEmail = "user_email"
	ctxUserRole  = "user_role"
)

func AuthMiddleware(accessTokenSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, api.Fail("unauthorized", "Authorization header required"))
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.TrimSpace(parts[0]) != "Bearer" {
			c.JSON(http.StatusUnauthorized, api.Fail("unauthorized", "Invalid authorization header format"))
			c.Abort()
			return
		}

		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, api.Fail("unauthorized", "Token is empty"))
			c.Abort()
			return
		}

		claims, err := ValidateToken(tokenString, accessTokenSecret)
		if err != nil {
			switch {
			case errors.Is(err, ErrTokenExpired):
				c.JSON(http.StatusUnauthorized, api.Fail("unauthorized", "Token expired"))
			case errors.Is(err, ErrInvalidTokenType):
				c.JSON(http.StatusUnauthorized, api.Fail("unauthorized", "Invalid token type"))
			default:
				c.JSON(http.StatusUnauthorized, api.Fail("unauthorized", "Invalid or malformed token"))
			}
			c.Abort()
			return
		}

		if claims.TokenType != "access" {
			c.JSON(http.StatusUnauthorized, api.Fail("unauthorized", "Access token required"))
			c.Abort()
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxUserEmail, claims.Email)
		c.Set(ctxUserRole, claims.Role)

		c.Next()
	}
}

func RequireRole(requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ctxUserRole)
		if !exists {
			c.JSON(http.StatusUnauthorized, api.Fail("unauthorized", "User role not found"))
			c.Abort()
			return
		}

		roleStr, ok := role.(string)
		if !ok || roleStr != requiredRole {
			c.JSON(http.StatusForbidden, api.Fail("forbidden", "Insufficient permissions"))
			c.Abort()
			return
		}

		c.Next()
	}
}

func GetUserID(c *gin.Context) (int, bool) {
	userID, exists := c.Get(ctxUserID)
	if !exists {
		return 0, false
	}

	id, ok := userID.(int)
	if !ok {
		return 0, false
	}

	return id, true
}

func GetRole(c *gin.Context) (string, bool) {
	role, exists := c.Get(ctxUserRole)
	if !exists {
		return "", false
	}

	r, ok := role.(string)
	return r, ok
}
