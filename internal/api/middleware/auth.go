package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"martial-service/internal/auth"
	"martial-service/pkg/apperrors"
	"martial-service/pkg/response"
)

type AuthMiddleware struct {
	authService *auth.Service
}

func NewAuthMiddleware(authService *auth.Service) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

// RequireAuth verifies the bearer token and attaches the resolved caller
// identity to the request context.
func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			response.AbortError(c, apperrors.New(apperrors.Unauthorized, "Authentication token not provided"))
			return
		}

		identity, err := am.authService.VerifyToken(c.Request.Context(), token)
		if err != nil {
			response.AbortError(c, err)
			return
		}

		c.Set("userID", identity.ID)
		c.Set("userName", identity.Name)
		c.Set("userEmail", identity.Email)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
