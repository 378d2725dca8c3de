package httpapi

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/mkarpovs/studynotes/internal/common"
)

// errorHandler is the top-level error boundary: every handler error is
// converted into a structured JSON body here, and unexpected failures come
// back as a generic 500 so no internal detail or stack trace reaches the
// client.
func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
	}

	switch {
	case errors.Is(err, common.ErrorValidation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	case errors.Is(err, common.ErrorUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid credentials"})
	case errors.Is(err, common.ErrInvalidToken), errors.Is(err, common.ErrTokenExpired):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "invalid token"})
	case errors.Is(err, common.ErrorAlreadyExists):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "already exists"})
	case errors.Is(err, common.ErrorNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}

	s.logger.Error(c.UserContext(), "request failed", "method", c.Method(), "path", c.Path(), "error", err.Error())
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
}
