package response

import (
	"github.com/gofiber/fiber/v2"

	"unihub/internal/core/domain"
)

// Response represents the standard API envelope
type Response struct {
	Status  int         `json:"status"`
	Payload interface{} `json:"payload"`
	Message *string     `json:"message"`
}

func send(c *fiber.Ctx, status int, payload interface{}, message string) error {
	r := Response{Status: status, Payload: payload}
	if message != "" {
		r.Message = &message
	}
	return c.Status(status).JSON(r)
}

// Success sends a 200 response with a payload
func Success(c *fiber.Ctx, payload interface{}) error {
	return send(c, fiber.StatusOK, payload, "")
}

// Created sends a 201 created response
func Created(c *fiber.Ctx, payload interface{}) error {
	return send(c, fiber.StatusCreated, payload, "")
}

// Message sends a 200 response carrying only a message
func Message(c *fiber.Ctx, message string) error {
	return send(c, fiber.StatusOK, nil, message)
}

// Error sends an error response
func Error(c *fiber.Ctx, statusCode int, message string) error {
	return send(c, statusCode, nil, message)
}

// BadRequest sends a 400 bad request response
func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

// Unauthorized sends a 401 unauthorized response
func Unauthorized(c *fiber.Ctx) error {
	return Error(c, fiber.StatusUnauthorized, domain.ErrUnauthorized.Message)
}

// Forbidden sends a 403 forbidden response
func Forbidden(c *fiber.Ctx) error {
	return Error(c, fiber.StatusForbidden, domain.ErrAccessDenied.Message)
}

// FromError sends the envelope for an application error; unknown errors become 500
func FromError(c *fiber.Ctx, err error) error {
	appErr, _ := domain.AsAppError(err)
	return Error(c, appErr.Code, appErr.Message)
}
