package server

import (
	"strconv"

	"uplift/internal/models"
	"uplift/internal/repository"
	"uplift/internal/service"

	"github.com/gofiber/fiber/v2"
)

// reactionOption is one reaction type offered by the feed and post views.
type reactionOption struct {
	ID    int
	Label string
}

var reactionOptions = []reactionOption{
	{models.ReactionLike, "Like"},
	{models.ReactionLove, "Love"},
	{models.ReactionLaugh, "Laugh"},
	{models.ReactionWow, "Wow"},
}

func (s *Server) handleIndex(c *fiber.Ctx) error {
	return c.Redirect("/feed", fiber.StatusSeeOther)
}

func (s *Server) handleFeed(c *fiber.Ctx) error {
	mode := c.Query("type")
	switch mode {
	case repository.ModeContent, repository.ModeUser, repository.ModeReaction:
	default:
		// Unrecognized modes fall back to an unfiltered content search.
		mode = repository.ModeContent
	}

	reactionID, _ := strconv.Atoi(c.Query("reaction"))
	if mode == repository.ModeReaction && !models.KnownReaction(reactionID) {
		return s.renderError(c, models.NewValidationError("Unknown reaction type"))
	}

	query := c.Query("q")
	offset, _ := strconv.Atoi(c.Query("offset"))
	if offset < 0 {
		offset = 0
	}

	submissions, err := s.feedService.ListFeed(c.UserContext(), service.FeedInput{
		Mode:       mode,
		Query:      query,
		ReactionID: reactionID,
		ViewerID:   viewerFrom(c).UserID(),
		Offset:     offset,
	})
	if err != nil {
		return s.renderError(c, err)
	}

	return s.render(c, "feed", fiber.Map{
		"Submissions":  submissions,
		"Mode":         mode,
		"Query":        query,
		"ReactionID":   reactionID,
		"Reactions":    reactionOptions,
		"ErrorMessage": c.Query("error"),
	})
}

func (s *Server) handleShowSubmission(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return s.renderError(c, err)
	}

	submission, err := s.feedService.GetSubmission(c.UserContext(), id, viewerFrom(c).UserID())
	if err != nil {
		return s.renderError(c, err)
	}

	return s.render(c, "post", fiber.Map{
		"Submission": submission,
		"Reactions":  reactionOptions,
		"Rejected":   c.Query("rejected") == "1",
	})
}
