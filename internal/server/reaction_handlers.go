package server

import (
	"log/slog"
	"strconv"

	"uplift/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// handleReact upserts the viewer's reaction. The client is sent back to the
// page it came from whether or not the write succeeded; a broken reaction is
// not worth an error page.
func (s *Server) handleReact(c *fiber.Ctx) error {
	submissionID, _ := strconv.ParseUint(c.FormValue("submission_id"), 10, 32)
	reactionID, _ := strconv.Atoi(c.FormValue("reaction"))

	if submissionID != 0 {
		err := s.submissionService.React(c.UserContext(), viewerFrom(c).UserID(), uint(submissionID), reactionID)
		if err != nil {
			middleware.Logger.WarnContext(c.UserContext(), "react failed",
				slog.Uint64("submission_id", submissionID),
				slog.String("error", err.Error()))
		}
	}

	return redirectBack(c)
}

func (s *Server) handleUnreact(c *fiber.Ctx) error {
	submissionID, _ := strconv.ParseUint(c.FormValue("submission_id"), 10, 32)

	if submissionID != 0 {
		err := s.submissionService.Unreact(c.UserContext(), viewerFrom(c).UserID(), uint(submissionID))
		if err != nil {
			middleware.Logger.WarnContext(c.UserContext(), "unreact failed",
				slog.Uint64("submission_id", submissionID),
				slog.String("error", err.Error()))
		}
	}

	return redirectBack(c)
}
