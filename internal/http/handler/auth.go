package handler

import (
	"github.com/gofiber/fiber/v2"

	"facilityassist/internal/auth"
	"facilityassist/internal/http/middleware"
	"facilityassist/internal/service"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// loginResponse is flat: the caller's identity fields sit next to the token
// rather than under a nested object.
type loginResponse struct {
	auth.Principal
	Token string `json:"token"`
}

// Login authenticates a username/password pair and returns a signed token.
// Unknown users and wrong passwords produce the same response so the
// endpoint cannot be used to probe for valid usernames.
func Login(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req loginRequest
		if err := c.BodyParser(&req); err != nil {
			return respondError(c, fiber.StatusBadRequest, "invalid request body")
		}
		if req.Username == "" || req.Password == "" {
			return respondError(c, fiber.StatusBadRequest, "username and password are required")
		}

		res, err := svc.Login(c.UserContext(), req.Username, req.Password)
		if err != nil {
			return serviceError(c, err)
		}

		return respondOK(c, "login successful", loginResponse{
			Principal: res.Principal,
			Token:     res.Token,
		})
	}
}

// Logout acknowledges a logout. Tokens are stateless, so the client simply
// discards its copy; nothing is revoked server-side.
func Logout() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return respondOK(c, "logout successful", nil)
	}
}

// Me returns the authenticated caller's own account info.
func Me(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		info, err := svc.Info(c.UserContext(), middleware.PrincipalFrom(c))
		if err != nil {
			return serviceError(c, err)
		}
		return respondOK(c, "user info retrieved", info)
	}
}
