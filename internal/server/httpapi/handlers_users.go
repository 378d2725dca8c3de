package httpapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mkarpovs/studynotes/internal/common"
)

func (s *Server) handleListUsers(c *fiber.Ctx) error {
	result, err := s.users.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(emptyAsArray(result))
}

func (s *Server) handleCreateUser(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return common.ErrorValidation
	}

	user, err := s.users.Register(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

func (s *Server) handleDeleteUser(c *fiber.Ctx) error {
	if err := s.users.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(deletedResponse)
}
