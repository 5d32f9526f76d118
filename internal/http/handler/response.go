package handler

import "github.com/gofiber/fiber/v2"

// envelope is the uniform response body: every endpoint, success or failure,
// returns this shape.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// respondOK writes a success envelope with HTTP 200.
func respondOK(c *fiber.Ctx, message string, data any) error {
	return respond(c, fiber.StatusOK, message, data)
}

// respond writes a success envelope with the given status.
func respond(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// respondError writes a failure envelope. Data is always null on failure.
func respondError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(envelope{
		Success: false,
		Message: message,
		Data:    nil,
	})
}
