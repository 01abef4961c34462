// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gestor-gastos/backend/internal/application/adapter"
	domainerror "github.com/gestor-gastos/backend/internal/domain/error"
	"github.com/gestor-gastos/backend/internal/integration/entrypoint/dto"
)

// ContextKey is a type for context keys.
type ContextKey string

// UserKeyKey is the context key for the authenticated user's key.
const UserKeyKey ContextKey = "user_key"

// AuthMiddleware provides session token authentication middleware.
type AuthMiddleware struct {
	tokens adapter.SessionTokens
}

// NewAuthMiddleware creates a new auth middleware instance.
func NewAuthMiddleware(tokens adapter.SessionTokens) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Authenticate returns a Gin middleware handler that enforces a valid
// session token and stores the resolved user key in the request context.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "Authorization header is required",
				Code:  string(domainerror.ErrCodeMissingToken),
			})
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "Invalid authorization header format",
				Code:  string(domainerror.ErrCodeInvalidToken),
			})
			c.Abort()
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "Token is required",
				Code:  string(domainerror.ErrCodeMissingToken),
			})
			c.Abort()
			return
		}

		userKey, err := m.tokens.Verify(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "Invalid or expired token",
				Code:  string(domainerror.ErrCodeInvalidToken),
			})
			c.Abort()
			return
		}

		c.Set(string(UserKeyKey), userKey)
		c.Next()
	}
}

// GetUserKeyFromContext extracts the authenticated user key from the Gin context.
func GetUserKeyFromContext(c *gin.Context) (string, bool) {
	value, exists := c.Get(string(UserKeyKey))
	if !exists {
		return "", false
	}
	userKey, ok := value.(string)
	if !ok || userKey == "" {
		return "", false
	}
	return userKey, true
}
