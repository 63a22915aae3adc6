package server

import (
	"errors"
	"fmt"

	"uplift/internal/moderation"
	"uplift/internal/service"

	"github.com/gofiber/fiber/v2"
)

func (s *Server) handleCreateReply(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return s.renderError(c, err)
	}

	postURL := fmt.Sprintf("/post/%d", id)

	_, err = s.replyService.Create(c.UserContext(), service.CreateReplyInput{
		UserID:       viewerFrom(c).UserID(),
		SubmissionID: id,
		Text:         c.FormValue("text"),
	})
	switch {
	case err == nil:
		return c.Redirect(postURL, fiber.StatusSeeOther)
	case errors.Is(err, moderation.ErrEmptyContent):
		// An empty reply is dropped silently.
		return c.Redirect(postURL, fiber.StatusSeeOther)
	case errors.Is(err, moderation.ErrRejected):
		return c.Redirect(postURL+"?rejected=1", fiber.StatusSeeOther)
	default:
		return s.renderError(c, err)
	}
}

func (s *Server) handleDeleteReply(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return s.renderError(c, err)
	}

	viewer := viewerFrom(c)
	err = s.replyService.Delete(c.UserContext(), service.DeleteReplyInput{
		ReplyID: id,
		UserID:  viewer.UserID(),
		Manager: viewer.IsManager(),
	})
	if err != nil {
		return s.renderError(c, err)
	}

	return redirectBack(c)
}
