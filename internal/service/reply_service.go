package service

import (
	"context"

	"uplift/internal/models"
	"uplift/internal/moderation"
	"uplift/internal/observability"
	"uplift/internal/repository"
)

const maxReplyLen = 2000

// ReplyService handles reply creation and deletion.
type ReplyService struct {
	replyRepo      repository.ReplyRepository
	submissionRepo repository.SubmissionRepository
	filter         *moderation.Filter
}

// CreateReplyInput is the payload for a new reply.
type CreateReplyInput struct {
	UserID       uint
	SubmissionID uint
	Text         string
}

// DeleteReplyInput identifies a reply and the actor deleting it.
type DeleteReplyInput struct {
	ReplyID uint
	UserID  uint
	Manager bool
}

// NewReplyService returns a new ReplyService.
func NewReplyService(
	replyRepo repository.ReplyRepository,
	submissionRepo repository.SubmissionRepository,
	filter *moderation.Filter,
) *ReplyService {
	return &ReplyService{
		replyRepo:      replyRepo,
		submissionRepo: submissionRepo,
		filter:         filter,
	}
}

// Create runs the moderation filter and persists the reply on acceptance.
// The same gate applies to replies as to submissions.
func (s *ReplyService) Create(ctx context.Context, in CreateReplyInput) (*models.Reply, error) {
	if _, err := s.submissionRepo.GetByID(ctx, in.SubmissionID); err != nil {
		return nil, err
	}
	if len(in.Text) > maxReplyLen {
		return nil, models.NewValidationError("Reply too long (max 2000 characters)")
	}

	if _, err := s.filter.Assess(in.Text); err != nil {
		return nil, err
	}

	userID := in.UserID
	reply := &models.Reply{
		SubmissionID: in.SubmissionID,
		UserID:       &userID,
		Text:         in.Text,
	}
	if err := s.replyRepo.Create(ctx, reply); err != nil {
		return nil, err
	}

	observability.SubmissionsCreated.WithLabelValues("reply").Inc()
	return reply, nil
}

// Delete removes a reply when the actor is its author or a manager.
func (s *ReplyService) Delete(ctx context.Context, in DeleteReplyInput) error {
	reply, err := s.replyRepo.GetByID(ctx, in.ReplyID)
	if err != nil {
		return err
	}

	owner := reply.UserID != nil && *reply.UserID == in.UserID
	if !owner && !in.Manager {
		return models.NewForbiddenError("You can only delete your own replies")
	}

	return s.replyRepo.Delete(ctx, in.ReplyID)
}
