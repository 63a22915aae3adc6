package service

import (
	"context"
	"testing"

	"uplift/internal/models"
	"uplift/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListFeedAttachesAggregates(t *testing.T) {
	submissions := &stubSubmissionRepo{
		listFn: func(_ context.Context, _ repository.FeedFilter, _, _ int) ([]*models.Submission, error) {
			return []*models.Submission{{ID: 1}, {ID: 2}}, nil
		},
	}
	reactions := &stubReactionRepo{
		breakdownFn: func(_ context.Context, ids []uint) (map[uint]map[int]int64, error) {
			assert.Equal(t, []uint{1, 2}, ids)
			return map[uint]map[int]int64{
				1: {models.ReactionLike: 3, models.ReactionLove: 2},
			}, nil
		},
		viewerReactionsFn: func(_ context.Context, userID uint, _ []uint) (map[uint]int, error) {
			assert.EqualValues(t, 9, userID)
			return map[uint]int{1: models.ReactionLove}, nil
		},
	}
	svc := NewFeedService(submissions, reactions)

	got, err := svc.ListFeed(context.Background(), FeedInput{ViewerID: 9})
	require.NoError(t, err)
	require.Len(t, got, 2)

	// The total is the sum of the per-type breakdown.
	assert.EqualValues(t, 5, got[0].ReactionCount)
	assert.Equal(t, models.ReactionLove, got[0].MyReaction)

	assert.EqualValues(t, 0, got[1].ReactionCount)
	assert.Zero(t, got[1].MyReaction)
}

func TestListFeedAnonymousSkipsViewerReactions(t *testing.T) {
	submissions := &stubSubmissionRepo{
		listFn: func(_ context.Context, filter repository.FeedFilter, _, _ int) ([]*models.Submission, error) {
			assert.Equal(t, repository.ModeContent, filter.Mode)
			assert.Equal(t, "sun", filter.Query)
			return []*models.Submission{{ID: 1}}, nil
		},
	}
	reactions := &stubReactionRepo{
		breakdownFn: func(_ context.Context, _ []uint) (map[uint]map[int]int64, error) {
			return map[uint]map[int]int64{}, nil
		},
		viewerReactionsFn: func(context.Context, uint, []uint) (map[uint]int, error) {
			t.Fatal("anonymous feed must not query viewer reactions")
			return nil, nil
		},
	}
	svc := NewFeedService(submissions, reactions)

	got, err := svc.ListFeed(context.Background(), FeedInput{Mode: repository.ModeContent, Query: "sun"})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestGetSubmissionAggregates(t *testing.T) {
	submissions := &stubSubmissionRepo{
		getByIDFn: func(_ context.Context, id uint) (*models.Submission, error) {
			return &models.Submission{ID: id}, nil
		},
	}
	reactions := &stubReactionRepo{
		breakdownFn: func(_ context.Context, ids []uint) (map[uint]map[int]int64, error) {
			return map[uint]map[int]int64{ids[0]: {models.ReactionWow: 4}}, nil
		},
		viewerReactionsFn: func(context.Context, uint, []uint) (map[uint]int, error) {
			return map[uint]int{}, nil
		},
	}
	svc := NewFeedService(submissions, reactions)

	got, err := svc.GetSubmission(context.Background(), 5, 9)
	require.NoError(t, err)
	assert.EqualValues(t, 4, got.ReactionCount)
	assert.EqualValues(t, 4, got.Breakdown[models.ReactionWow])
}
