package httpapi

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/mkarpovs/studynotes/internal/server/auth"
)

const identityKey = "identity"

// requireToken gates a route behind a bearer token. A missing or malformed
// header is 401; a token that fails verification is 403 (mapped from the
// auth sentinels by the error handler). The verified identity is stored in
// the request locals.
func (s *Server) requireToken(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "no authorization header")
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "no token")
	}

	identity, err := auth.GetIdentityFromToken(parts[1], s.jwtSecret)
	if err != nil {
		return err
	}

	c.Locals(identityKey, identity)
	return c.Next()
}
