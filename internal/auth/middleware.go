package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/medlegalmatch/auth-service/pkg/util"
)

const claimsKey = "auth_claims"

// Middleware validates bearer tokens on protected routes. Malformed, invalid
// and expired tokens all collapse to 401 at the transport; the caller must
// re-authenticate either way.
type Middleware struct {
	tokens *TokenManager
}

// NewMiddleware constructs middleware around the token manager.
func NewMiddleware(tokens *TokenManager) *Middleware {
	return &Middleware{tokens: tokens}
}

// Handle enforces authentication for protected routes.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.Parse(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized(err.Error())
	}

	c.Locals(claimsKey, claims)
	return c.Next()
}

// ClaimsFromContext retrieves the verified token claims.
func ClaimsFromContext(c *fiber.Ctx) (*Claims, bool) {
	val := c.Locals(claimsKey)
	if val == nil {
		return nil, false
	}
	claims, ok := val.(*Claims)
	return claims, ok
}
