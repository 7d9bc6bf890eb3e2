package middleware

import (
	"strings"

	"identity/internal/delivery/http/response"
	"identity/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// AuthMiddleware provides the bearer-token gate for protected routes.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate validates the bearer token and attaches the subject to the
// request context. A missing token is 401, a token that fails verification
// is 400. The guard never fetches the user record itself.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")

		// The token is the second whitespace-delimited segment of the header
		// ("Bearer <token>").
		parts := strings.Fields(authHeader)
		if len(parts) < 2 {
			return response.Unauthorized(c, "TOKEN_MISSING", "access denied")
		}

		userID, err := m.tokenSvc.Verify(parts[1])
		if err != nil {
			return response.BadRequest(c, "TOKEN_INVALID", "token invalid")
		}

		// Set the subject on the context for handlers to use
		c.Set("userID", userID)

		return next(c)
	}
}
