package httpapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mkarpovs/studynotes/internal/common"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleRegister(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return common.ErrorValidation
	}

	user, err := s.users.Register(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}

	s.logger.Info(c.UserContext(), "user registered", "username", user.Username)
	return c.JSON(fiber.Map{"message": "registered"})
}

func (s *Server) handleLogin(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return common.ErrorUnauthorized
	}

	token, err := s.users.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"token": token})
}
