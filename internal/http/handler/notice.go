package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"facilityassist/internal/http/middleware"
	"facilityassist/internal/service"
)

// ListNotices returns one page of notices, newest first. The page query
// parameter is 0-based; size defaults to the service's page size.
func ListNotices(svc service.NoticeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, size, err := pageParams(c)
		if err != nil {
			return respondError(c, fiber.StatusBadRequest, err.Error())
		}

		res, err := svc.List(c.UserContext(), page, size)
		if err != nil {
			return serviceError(c, err)
		}
		return respondOK(c, "notices retrieved", res)
	}
}

// ListAllNotices returns every notice as a single page.
func ListAllNotices(svc service.NoticeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.ListAll(c.UserContext())
		if err != nil {
			return serviceError(c, err)
		}
		return respondOK(c, "notices retrieved", res)
	}
}

// GetNotice returns a single notice with its full content.
func GetNotice(svc service.NoticeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c)
		if err != nil {
			return respondError(c, fiber.StatusBadRequest, "invalid id format")
		}

		notice, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return serviceError(c, err)
		}
		return respondOK(c, "notice retrieved", notice)
	}
}

// CreateNotice posts a new notice authored by the caller.
func CreateNotice(svc service.NoticeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req service.CreateNoticeRequest
		if err := c.BodyParser(&req); err != nil {
			return respondError(c, fiber.StatusBadRequest, "invalid request body")
		}

		notice, err := svc.Create(c.UserContext(), middleware.PrincipalFrom(c), req)
		if err != nil {
			return serviceError(c, err)
		}
		return respond(c, fiber.StatusCreated, "notice created", notice)
	}
}

// pageParams reads the 0-based page and size query parameters.
func pageParams(c *fiber.Ctx) (int, int, error) {
	page, err := strconv.Atoi(c.Query("page", "0"))
	if err != nil {
		return 0, 0, fiber.NewError(fiber.StatusBadRequest, "invalid page")
	}
	size, err := strconv.Atoi(c.Query("size", "0"))
	if err != nil {
		return 0, 0, fiber.NewError(fiber.StatusBadRequest, "invalid size")
	}
	return page, size, nil
}

// idParam reads the numeric :id path parameter.
func idParam(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("id"), 10, 64)
}
