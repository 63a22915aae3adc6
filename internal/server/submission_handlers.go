package server

import (
	"errors"

	"uplift/internal/models"
	"uplift/internal/service"

	"github.com/gofiber/fiber/v2"
)

func (s *Server) handleNewSubmissionForm(c *fiber.Ctx) error {
	return s.render(c, "newpost", nil)
}

func (s *Server) handleCreateSubmission(c *fiber.Ctx) error {
	text := c.FormValue("text")

	_, err := s.submissionService.Create(c.UserContext(), service.CreateSubmissionInput{
		UserID: viewerFrom(c).UserID(),
		Text:   text,
	})
	if err != nil {
		// Validation and moderation failures re-render the form inline with
		// the attempted text preserved; nothing was persisted.
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code != "INTERNAL_ERROR" {
			return c.Status(fiber.StatusBadRequest).Render("newpost", fiber.Map{
				"Viewer": viewerFrom(c),
				"Error":  appErr.Message,
				"Text":   text,
			}, "layout")
		}
		return c.Status(fiber.StatusInternalServerError).Render("newpost", fiber.Map{
			"Viewer": viewerFrom(c),
			"Error":  "Something went wrong, please try again",
			"Text":   text,
		}, "layout")
	}

	return c.Redirect("/feed", fiber.StatusSeeOther)
}

func (s *Server) handleDeleteSubmission(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return s.renderError(c, err)
	}

	viewer := viewerFrom(c)
	err = s.submissionService.Delete(c.UserContext(), service.DeleteSubmissionInput{
		SubmissionID: id,
		UserID:       viewer.UserID(),
		Manager:      viewer.IsManager(),
	})
	if err != nil {
		return s.renderError(c, err)
	}

	return c.Redirect("/feed", fiber.StatusSeeOther)
}
