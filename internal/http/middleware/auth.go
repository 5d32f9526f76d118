package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"facilityassist/internal/auth"
	"facilityassist/internal/service"
)

// Auth validates the Bearer token on incoming requests and stores the
// resolved principal in context locals under auth.PrincipalLocalKey.
// Requests without a valid token are rejected with 401 before reaching
// the handler.
func Auth(tokens *auth.TokenManager, svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
		}

		_, userID, err := tokens.Parse(token)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid or expired token")
		}

		principal, err := svc.ResolvePrincipal(c.UserContext(), userID)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid or expired token")
		}

		c.Locals(auth.PrincipalLocalKey, principal)
		return c.Next()
	}
}

// PrincipalFrom extracts the authenticated principal from context locals.
// Returns nil when the request went through no Auth middleware.
func PrincipalFrom(c *fiber.Ctx) *auth.Principal {
	p, _ := c.Locals(auth.PrincipalLocalKey).(*auth.Principal)
	return p
}
