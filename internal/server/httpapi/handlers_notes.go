package httpapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mkarpovs/studynotes/internal/common"
)

func (s *Server) handleListNotes(c *fiber.Ctx) error {
	result, err := s.notes.List(c.UserContext(), c.Query("subject_id"))
	if err != nil {
		return err
	}
	return c.JSON(emptyAsArray(result))
}

// handleCreateNote accepts multipart/form-data: a "file" part plus "title"
// and "subject_id" fields.
func (s *Server) handleCreateNote(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return common.ErrorValidation
	}

	f, err := fileHeader.Open()
	if err != nil {
		return common.ErrorValidation
	}
	defer f.Close()

	created, err := s.notes.Create(c.UserContext(),
		c.FormValue("title"), c.FormValue("subject_id"), f, fileHeader.Filename)
	if err != nil {
		return err
	}

	s.logger.Info(c.UserContext(), "note uploaded",
		"title", created.Title, "file", created.Filename)
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (s *Server) handleDeleteNote(c *fiber.Ctx) error {
	if err := s.notes.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(deletedResponse)
}
