package handler

import (
	"github.com/gofiber/fiber/v2"

	"facilityassist/internal/service"
)

// ListUsers returns all user accounts with their unit blocks.
func ListUsers(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		users, err := svc.List(c.UserContext())
		if err != nil {
			return serviceError(c, err)
		}
		return respondOK(c, "users retrieved", users)
	}
}

// ListManagers returns all accounts with the MANAGER role.
func ListManagers(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		users, err := svc.Managers(c.UserContext())
		if err != nil {
			return serviceError(c, err)
		}
		return respondOK(c, "managers retrieved", users)
	}
}
