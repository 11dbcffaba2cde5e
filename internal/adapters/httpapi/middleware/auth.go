package middleware

import (
	"context"
	"net/http"
	"strings"

	userPort "inkwell/internal/ports/user"

	"github.com/gin-gonic/gin"
)

const (
	// UserIDKey holds the authenticated user id in the gin context.
	UserIDKey = "userID"
	// ClaimsKey holds the *userPort.TokenClaims of the access token.
	ClaimsKey = "tokenClaims"
)

type TokenVerifier interface {
	VerifyAccessToken(ctx context.Context, raw string) (*userPort.TokenClaims, error)
}

// JWTAuthMiddleware rejects requests without a valid, unrevoked access token.
func JWTAuthMiddleware(v TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearer(c)
		if raw == "" {
			abort(c, "Authentication credentials were not provided")
			return
		}
		claims, err := v.VerifyAccessToken(c.Request.Context(), raw)
		if err != nil {
			abort(c, "Token is invalid or expired")
			return
		}
		setClaims(c, claims)
		c.Next()
	}
}

// OptionalAuth sets the user when a valid token is present and lets anonymous requests through.
func OptionalAuth(v TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw := bearer(c); raw != "" {
			if claims, err := v.VerifyAccessToken(c.Request.Context(), raw); err == nil {
				setClaims(c, claims)
			}
		}
		c.Next()
	}
}

func bearer(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

func setClaims(c *gin.Context, claims *userPort.TokenClaims) {
	c.Set(UserIDKey, claims.UserID)
	c.Set(ClaimsKey, claims)
}

func abort(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"code":    http.StatusUnauthorized,
		"message": message,
		"data":    nil,
	})
}
