package service

import (
	"context"

	"uplift/internal/models"
	"uplift/internal/moderation"
	"uplift/internal/observability"
	"uplift/internal/repository"
)

const maxSubmissionLen = 5000

// SubmissionService handles submission creation, deletion and reactions.
type SubmissionService struct {
	submissionRepo repository.SubmissionRepository
	reactionRepo   repository.ReactionRepository
	filter         *moderation.Filter
}

// CreateSubmissionInput is the payload for a new submission.
type CreateSubmissionInput struct {
	UserID uint
	Text   string
}

// DeleteSubmissionInput identifies a submission and the actor deleting it.
// Manager comes from the actor's session, not a fresh lookup.
type DeleteSubmissionInput struct {
	SubmissionID uint
	UserID       uint
	Manager      bool
}

// NewSubmissionService returns a new SubmissionService.
func NewSubmissionService(
	submissionRepo repository.SubmissionRepository,
	reactionRepo repository.ReactionRepository,
	filter *moderation.Filter,
) *SubmissionService {
	return &SubmissionService{
		submissionRepo: submissionRepo,
		reactionRepo:   reactionRepo,
		filter:         filter,
	}
}

// Create runs the moderation filter and persists the submission on
// acceptance. Rejected text is never persisted.
func (s *SubmissionService) Create(ctx context.Context, in CreateSubmissionInput) (*models.Submission, error) {
	if len(in.Text) > maxSubmissionLen {
		return nil, models.NewValidationError("Post too long (max 5000 characters)")
	}

	if _, err := s.filter.Assess(in.Text); err != nil {
		return nil, err
	}

	userID := in.UserID
	submission := &models.Submission{
		UserID:   &userID,
		Text:     in.Text,
		Negative: false,
	}
	if err := s.submissionRepo.Create(ctx, submission); err != nil {
		return nil, err
	}

	observability.SubmissionsCreated.WithLabelValues("submission").Inc()
	return submission, nil
}

// Delete removes a submission when the actor is its author or a manager.
// Replies and reactions cascade at the storage layer.
func (s *SubmissionService) Delete(ctx context.Context, in DeleteSubmissionInput) error {
	submission, err := s.submissionRepo.GetByID(ctx, in.SubmissionID)
	if err != nil {
		return err
	}

	owner := submission.UserID != nil && *submission.UserID == in.UserID
	if !owner && !in.Manager {
		return models.NewForbiddenError("You can only delete your own posts")
	}

	return s.submissionRepo.Delete(ctx, in.SubmissionID)
}

// React upserts the viewer's reaction on a submission. Reacting again with a
// different type overwrites the previous reaction.
func (s *SubmissionService) React(ctx context.Context, userID, submissionID uint, reactionID int) error {
	if !models.KnownReaction(reactionID) {
		return models.NewValidationError("Unknown reaction type")
	}
	return s.reactionRepo.Upsert(ctx, submissionID, userID, reactionID)
}

// Unreact removes the viewer's reaction. A missing reaction is a no-op.
func (s *SubmissionService) Unreact(ctx context.Context, userID, submissionID uint) error {
	return s.reactionRepo.Remove(ctx, submissionID, userID)
}
