package handler

import (
	"github.com/gofiber/fiber/v2"

	"facilityassist/internal/service"
)

// ListUnits returns all units ordered by name.
func ListUnits(svc service.UnitService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		units, err := svc.List(c.UserContext())
		if err != nil {
			return serviceError(c, err)
		}
		return respondOK(c, "units retrieved", units)
	}
}
