package httpapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mkarpovs/studynotes/internal/common"
)

var deletedResponse = fiber.Map{"deleted": true}

// emptyAsArray keeps empty collections serializing as [] rather than null.
func emptyAsArray[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

func (s *Server) handleListClasses(c *fiber.Ctx) error {
	result, err := s.catalog.ListClasses(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(emptyAsArray(result))
}

func (s *Server) handleCreateClass(c *fiber.Ctx) error {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return common.ErrorValidation
	}

	created, err := s.catalog.CreateClass(c.UserContext(), req.Name)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (s *Server) handleDeleteClass(c *fiber.Ctx) error {
	if err := s.catalog.DeleteClass(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(deletedResponse)
}

func (s *Server) handleListSemesters(c *fiber.Ctx) error {
	result, err := s.catalog.ListSemesters(c.UserContext(), c.Query("class_id"))
	if err != nil {
		return err
	}
	return c.JSON(emptyAsArray(result))
}

func (s *Server) handleCreateSemester(c *fiber.Ctx) error {
	var req struct {
		Name    string `json:"name"`
		ClassID string `json:"class_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return common.ErrorValidation
	}

	created, err := s.catalog.CreateSemester(c.UserContext(), req.Name, req.ClassID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (s *Server) handleDeleteSemester(c *fiber.Ctx) error {
	if err := s.catalog.DeleteSemester(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(deletedResponse)
}

func (s *Server) handleListSubjects(c *fiber.Ctx) error {
	result, err := s.catalog.ListSubjects(c.UserContext(), c.Query("semester_id"))
	if err != nil {
		return err
	}
	return c.JSON(emptyAsArray(result))
}

func (s *Server) handleCreateSubject(c *fiber.Ctx) error {
	var req struct {
		Name       string `json:"name"`
		SemesterID string `json:"semester_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return common.ErrorValidation
	}

	created, err := s.catalog.CreateSubject(c.UserContext(), req.Name, req.SemesterID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (s *Server) handleDeleteSubject(c *fiber.Ctx) error {
	if err := s.catalog.DeleteSubject(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(deletedResponse)
}
