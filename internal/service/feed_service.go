// Package service contains the application's domain logic between handlers
// and repositories.
package service

import (
	"context"

	"uplift/internal/cache"
	"uplift/internal/models"
	"uplift/internal/repository"
)

const defaultFeedLimit = 50

// FeedService lists submissions with their reaction aggregates.
type FeedService struct {
	submissionRepo repository.SubmissionRepository
	reactionRepo   repository.ReactionRepository
}

// FeedInput describes one feed request.
type FeedInput struct {
	Mode       string
	Query      string
	ReactionID int
	ViewerID   uint
	Limit      int
	Offset     int
}

// NewFeedService returns a new FeedService.
func NewFeedService(
	submissionRepo repository.SubmissionRepository,
	reactionRepo repository.ReactionRepository,
) *FeedService {
	return &FeedService{
		submissionRepo: submissionRepo,
		reactionRepo:   reactionRepo,
	}
}

// ListFeed returns submissions ordered newest-first with reaction counts,
// per-type breakdowns and, for an authenticated viewer, their own reaction.
// The anonymous unfiltered first page is served cache-aside from Redis.
func (s *FeedService) ListFeed(ctx context.Context, in FeedInput) ([]*models.Submission, error) {
	limit := in.Limit
	if limit <= 0 || limit > defaultFeedLimit {
		limit = defaultFeedLimit
	}

	filter := repository.FeedFilter{
		Mode:       in.Mode,
		Query:      in.Query,
		ReactionID: in.ReactionID,
	}

	unfiltered := (filter.Mode == "" || filter.Mode == repository.ModeContent) && filter.Query == ""
	if in.ViewerID == 0 && unfiltered && in.Offset == 0 {
		var submissions []*models.Submission
		err := cache.Aside(ctx, cache.FeedKey(), &submissions, cache.FeedTTL, func() error {
			var fetchErr error
			submissions, fetchErr = s.listAggregated(ctx, filter, limit, 0, 0)
			return fetchErr
		})
		return submissions, err
	}

	return s.listAggregated(ctx, filter, limit, in.Offset, in.ViewerID)
}

// GetSubmission returns one submission with its replies and reaction
// aggregates for the given viewer.
func (s *FeedService) GetSubmission(ctx context.Context, id uint, viewerID uint) (*models.Submission, error) {
	submission, err := s.submissionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.aggregate(ctx, []*models.Submission{submission}, viewerID); err != nil {
		return nil, err
	}
	return submission, nil
}

func (s *FeedService) listAggregated(ctx context.Context, filter repository.FeedFilter, limit, offset int, viewerID uint) ([]*models.Submission, error) {
	submissions, err := s.submissionRepo.List(ctx, filter, limit, offset)
	if err != nil {
		return nil, err
	}
	if err := s.aggregate(ctx, submissions, viewerID); err != nil {
		return nil, err
	}
	return submissions, nil
}

// aggregate attaches reaction counts, breakdowns and the viewer's own
// reaction to the visible set. Two batched queries at most; never one per
// submission.
func (s *FeedService) aggregate(ctx context.Context, submissions []*models.Submission, viewerID uint) error {
	if len(submissions) == 0 {
		return nil
	}

	ids := make([]uint, len(submissions))
	for i, sub := range submissions {
		ids[i] = sub.ID
	}

	breakdown, err := s.reactionRepo.BreakdownFor(ctx, ids)
	if err != nil {
		return err
	}

	var mine map[uint]int
	if viewerID != 0 {
		if mine, err = s.reactionRepo.ViewerReactions(ctx, viewerID, ids); err != nil {
			return err
		}
	}

	for _, sub := range submissions {
		sub.Breakdown = breakdown[sub.ID]
		var total int64
		for _, count := range sub.Breakdown {
			total += count
		}
		sub.ReactionCount = total
		if mine != nil {
			sub.MyReaction = mine[sub.ID]
		}
	}
	return nil
}
