package repository

import (
	"context"
	"time"

	"uplift/internal/cache"
	"uplift/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReactionRepository defines persistence operations for reactions, including
// the grouped aggregation queries used by the feed.
type ReactionRepository interface {
	Upsert(ctx context.Context, submissionID, userID uint, reactionID int) error
	Remove(ctx context.Context, submissionID, userID uint) error
	BreakdownFor(ctx context.Context, submissionIDs []uint) (map[uint]map[int]int64, error)
	ViewerReactions(ctx context.Context, userID uint, submissionIDs []uint) (map[uint]int, error)
}

type reactionRepository struct {
	db *gorm.DB
}

// NewReactionRepository creates a new reaction repository.
func NewReactionRepository(db *gorm.DB) ReactionRepository {
	return &reactionRepository{db: db}
}

// Upsert inserts the reaction or, when a row already exists for the
// (submission, user) pair, overwrites its type and timestamp. The conflict
// clause makes this atomic; there is no read-then-write window.
func (r *reactionRepository) Upsert(ctx context.Context, submissionID, userID uint, reactionID int) error {
	reaction := models.Reaction{
		SubmissionID: submissionID,
		UserID:       userID,
		ReactionID:   reactionID,
		CreatedAt:    time.Now(),
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "submission_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"reaction_id", "created_at"}),
	}).Create(&reaction).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateSubmission(ctx, submissionID)
	return nil
}

// Remove deletes the viewer's reaction if present. Removing a reaction that
// does not exist is a no-op, not an error.
func (r *reactionRepository) Remove(ctx context.Context, submissionID, userID uint) error {
	err := r.db.WithContext(ctx).
		Where("submission_id = ? AND user_id = ?", submissionID, userID).
		Delete(&models.Reaction{}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateSubmission(ctx, submissionID)
	return nil
}

// BreakdownFor returns, for each submission in submissionIDs, a map of
// reaction type to count. One grouped query covers the whole visible set;
// the work is proportional to the reactions on those submissions.
func (r *reactionRepository) BreakdownFor(ctx context.Context, submissionIDs []uint) (map[uint]map[int]int64, error) {
	breakdown := make(map[uint]map[int]int64, len(submissionIDs))
	if len(submissionIDs) == 0 {
		return breakdown, nil
	}

	type row struct {
		SubmissionID uint
		ReactionID   int
		Count        int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&models.Reaction{}).
		Select("submission_id, reaction_id, COUNT(*) as count").
		Where("submission_id IN ?", submissionIDs).
		Group("submission_id").
		Group("reaction_id").
		Scan(&rows).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	for _, r := range rows {
		if breakdown[r.SubmissionID] == nil {
			breakdown[r.SubmissionID] = make(map[int]int64)
		}
		breakdown[r.SubmissionID][r.ReactionID] = r.Count
	}
	return breakdown, nil
}

// ViewerReactions returns the viewer's own reaction type per submission, for
// the given visible set, in a single query.
func (r *reactionRepository) ViewerReactions(ctx context.Context, userID uint, submissionIDs []uint) (map[uint]int, error) {
	mine := make(map[uint]int, len(submissionIDs))
	if userID == 0 || len(submissionIDs) == 0 {
		return mine, nil
	}

	type row struct {
		SubmissionID uint
		ReactionID   int
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&models.Reaction{}).
		Select("submission_id, reaction_id").
		Where("user_id = ? AND submission_id IN ?", userID, submissionIDs).
		Scan(&rows).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	for _, r := range rows {
		mine[r.SubmissionID] = r.ReactionID
	}
	return mine, nil
}
