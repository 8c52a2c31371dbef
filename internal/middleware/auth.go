package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jirani-app/app-jirani/internal/models"
	"github.com/jirani-app/app-jirani/internal/observability"
	"go.uber.org/zap"
)

// SessionVerifier checks a bearer token against the session store
type SessionVerifier interface {
	VerifySession(ctx context.Context, token string) (*models.SessionClaims, error)
}

// AuthMiddleware verifies the session token and stores its claims in the context
func AuthMiddleware(verifier SessionVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			c.Abort()
			return
		}

		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := verifier.VerifySession(c.Request.Context(), parts[1])
		if err != nil {
			switch {
			case errors.Is(err, models.ErrSessionRevoked):
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Session has ended. Sign in again."})
			case errors.Is(err, models.ErrInvalidToken):
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			default:
				observability.Logger().Error("failed to verify session", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify session"})
			}
			c.Abort()
			return
		}

		c.Set("claims", claims)
		c.Set("user_id", claims.Subject)
		c.Set("user_email", claims.Email)
		c.Set("session_id", claims.ID)
		c.Next()
	}
}

// ExtractUserID returns the authenticated user ID from the Gin context
func ExtractUserID(c *gin.Context) (string, error) {
	claims, err := ExtractClaims(c)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// ExtractClaims returns the session claims stored by AuthMiddleware
func ExtractClaims(c *gin.Context) (*models.SessionClaims, error) {
	claims, exists := c.Get("claims")
	if !exists {
		return nil, fmt.Errorf("claims not found")
	}

	sessionClaims, ok := claims.(*models.SessionClaims)
	if !ok {
		return nil, fmt.Errorf("invalid claims type")
	}

	return sessionClaims, nil
}
