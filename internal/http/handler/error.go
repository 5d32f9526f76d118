package handler

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"facilityassist/internal/http/middleware"
	"facilityassist/internal/service"
)

// serviceError translates service-layer sentinel errors into envelope
// responses. Unexpected errors are logged with their detail and surfaced
// as a generic 500.
func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		return respondError(c, fiber.StatusUnauthorized, "invalid username or password")
	case errors.Is(err, service.ErrUnauthenticated):
		return respondError(c, fiber.StatusUnauthorized, "authentication required")
	case errors.Is(err, service.ErrValidation):
		return respondError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotFound):
		return respondError(c, fiber.StatusNotFound, "resource not found")
	default:
		logInternalError(c, err)
		return respondError(c, fiber.StatusInternalServerError, "internal server error")
	}
}

// ErrorHandler returns a Fiber global error handler that standardizes error
// responses into the envelope shape.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		message := "internal server error"
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
			switch status {
			case fiber.StatusBadRequest:
				message = "bad request"
			case fiber.StatusUnauthorized:
				message = e.Message
			case fiber.StatusNotFound:
				message = "resource not found"
			case fiber.StatusMethodNotAllowed:
				message = "method not allowed"
			default:
				message = "internal server error"
			}
		}
		if status == fiber.StatusInternalServerError {
			logInternalError(c, err)
		}
		return respondError(c, status, message)
	}
}

// logInternalError records the detail of an error that is only surfaced to
// the client generically. Without it, a 500 cannot be traced back to its
// cause.
func logInternalError(c *fiber.Ctx, err error) {
	rid, _ := c.Locals(middleware.RequestIDLocalKey).(string)
	entry := map[string]any{
		"ts":         time.Now().Format(time.RFC3339Nano),
		"level":      "error",
		"msg":        "request_failed",
		"request_id": rid,
		"method":     c.Method(),
		"path":       c.Path(),
		"error":      err.Error(),
	}
	if b, jsonErr := json.Marshal(entry); jsonErr == nil {
		log.SetFlags(0)
		log.Println(string(b))
	}
}
