package service

import (
	"context"

	"uplift/internal/models"
	"uplift/internal/moderation"
	"uplift/internal/repository"
)

// Function-field stubs keep each test's behavior local to the test body.

type stubSubmissionRepo struct {
	createFn  func(ctx context.Context, submission *models.Submission) error
	getByIDFn func(ctx context.Context, id uint) (*models.Submission, error)
	listFn    func(ctx context.Context, filter repository.FeedFilter, limit, offset int) ([]*models.Submission, error)
	deleteFn  func(ctx context.Context, id uint) error
}

func (s *stubSubmissionRepo) Create(ctx context.Context, submission *models.Submission) error {
	return s.createFn(ctx, submission)
}

func (s *stubSubmissionRepo) GetByID(ctx context.Context, id uint) (*models.Submission, error) {
	return s.getByIDFn(ctx, id)
}

func (s *stubSubmissionRepo) List(ctx context.Context, filter repository.FeedFilter, limit, offset int) ([]*models.Submission, error) {
	return s.listFn(ctx, filter, limit, offset)
}

func (s *stubSubmissionRepo) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

type stubReplyRepo struct {
	createFn           func(ctx context.Context, reply *models.Reply) error
	getByIDFn          func(ctx context.Context, id uint) (*models.Reply, error)
	listBySubmissionFn func(ctx context.Context, submissionID uint) ([]*models.Reply, error)
	deleteFn           func(ctx context.Context, id uint) error
}

func (s *stubReplyRepo) Create(ctx context.Context, reply *models.Reply) error {
	return s.createFn(ctx, reply)
}

func (s *stubReplyRepo) GetByID(ctx context.Context, id uint) (*models.Reply, error) {
	return s.getByIDFn(ctx, id)
}

func (s *stubReplyRepo) ListBySubmission(ctx context.Context, submissionID uint) ([]*models.Reply, error) {
	return s.listBySubmissionFn(ctx, submissionID)
}

func (s *stubReplyRepo) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

type stubReactionRepo struct {
	upsertFn          func(ctx context.Context, submissionID, userID uint, reactionID int) error
	removeFn          func(ctx context.Context, submissionID, userID uint) error
	breakdownFn       func(ctx context.Context, submissionIDs []uint) (map[uint]map[int]int64, error)
	viewerReactionsFn func(ctx context.Context, userID uint, submissionIDs []uint) (map[uint]int, error)
}

func (s *stubReactionRepo) Upsert(ctx context.Context, submissionID, userID uint, reactionID int) error {
	return s.upsertFn(ctx, submissionID, userID, reactionID)
}

func (s *stubReactionRepo) Remove(ctx context.Context, submissionID, userID uint) error {
	return s.removeFn(ctx, submissionID, userID)
}

func (s *stubReactionRepo) BreakdownFor(ctx context.Context, submissionIDs []uint) (map[uint]map[int]int64, error) {
	return s.breakdownFn(ctx, submissionIDs)
}

func (s *stubReactionRepo) ViewerReactions(ctx context.Context, userID uint, submissionIDs []uint) (map[uint]int, error) {
	return s.viewerReactionsFn(ctx, userID, submissionIDs)
}

// acceptAll and rejectAll are fixed-verdict moderation filters.
func acceptAll() *moderation.Filter {
	return moderation.NewFilter(moderation.ScorerFunc(func(string) float64 { return 1 }))
}

func rejectAll() *moderation.Filter {
	return moderation.NewFilter(moderation.ScorerFunc(func(string) float64 { return -1 }))
}

func ptr(v uint) *uint { return &v }
