package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yigit/skillswap/internal/pkg/apperrors"
	"github.com/yigit/skillswap/internal/pkg/auth"
)

// Context keys set by JWTAuth
const (
	ContextUserID = "userID"
	ContextEmail  = "email"
)

// Authenticator validates a bearer token for one request
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*auth.Claims, error)
}

// AuthMiddleware for authentication
type AuthMiddleware struct {
	authenticator Authenticator
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(authenticator Authenticator) *AuthMiddleware {
	return &AuthMiddleware{authenticator: authenticator}
}

// JWTAuth middleware for JWT token validation
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")

		// Swagger UI sometimes sends the token as a query parameter
		if authHeader == "" {
			authHeader = c.Query("token")
		}
		if authHeader == "" {
			HandleAPIError(c, apperrors.ErrTokenNotFound)
			return
		}

		authHeader = strings.Trim(strings.TrimSpace(authHeader), "\"'")
		tokenString := authHeader
		// A raw JWT without the Bearer prefix is accepted for Swagger UI convenience
		if !(strings.Count(authHeader, ".") == 2 && !strings.Contains(authHeader, " ")) {
			var err error
			if tokenString, err = auth.ExtractBearerToken(authHeader); err != nil {
				HandleAPIError(c, err)
				return
			}
		}

		claims, err := m.authenticator.Authenticate(c.Request.Context(), tokenString)
		if err != nil {
			HandleAPIError(c, err)
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Next()
	}
}

// CurrentAccountID returns the authenticated account id set by JWTAuth
func CurrentAccountID(c *gin.Context) (int64, bool) {
	value, exists := c.Get(ContextUserID)
	if !exists {
		return 0, false
	}
	id, ok := value.(int64)
	return id, ok
}
