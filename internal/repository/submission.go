package repository

import (
	"context"
	"errors"
	"strings"

	"uplift/internal/cache"
	"uplift/internal/models"

	"gorm.io/gorm"
)

// Feed filter modes. Mutually exclusive per request; ModeContent with an
// empty query means no filtering.
const (
	ModeContent  = "content"
	ModeUser     = "user"
	ModeReaction = "reaction"
)

// FeedFilter narrows the submission list.
type FeedFilter struct {
	Mode       string
	Query      string
	ReactionID int
}

// SubmissionRepository defines persistence operations for submissions.
type SubmissionRepository interface {
	Create(ctx context.Context, submission *models.Submission) error
	GetByID(ctx context.Context, id uint) (*models.Submission, error)
	List(ctx context.Context, filter FeedFilter, limit, offset int) ([]*models.Submission, error)
	Delete(ctx context.Context, id uint) error
}

type submissionRepository struct {
	db *gorm.DB
}

// NewSubmissionRepository creates a new submission repository.
func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) Create(ctx context.Context, submission *models.Submission) error {
	if err := r.db.WithContext(ctx).Create(submission).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.FeedKey())
	return nil
}

func (r *submissionRepository) GetByID(ctx context.Context, id uint) (*models.Submission, error) {
	var submission models.Submission
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Replies", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Replies.User").
		First(&submission, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Submission", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &submission, nil
}

func (r *submissionRepository) List(ctx context.Context, filter FeedFilter, limit, offset int) ([]*models.Submission, error) {
	q := r.db.WithContext(ctx).
		Model(&models.Submission{}).
		Preload("User").
		Order("submissions.created_at DESC")

	// LOWER(...) LIKE keeps the match case-insensitive on both PostgreSQL
	// and the SQLite test database.
	switch filter.Mode {
	case ModeUser:
		if filter.Query != "" {
			like := "%" + strings.ToLower(filter.Query) + "%"
			q = q.Joins("JOIN users ON users.id = submissions.user_id").
				Where("LOWER(users.first_name) LIKE ? OR LOWER(users.last_name) LIKE ?", like, like)
		}
	case ModeReaction:
		if filter.ReactionID != 0 {
			q = q.Where("submissions.id IN (?)",
				r.db.Model(&models.Reaction{}).
					Select("submission_id").
					Where("reaction_id = ?", filter.ReactionID))
		}
	default:
		if filter.Query != "" {
			like := "%" + strings.ToLower(filter.Query) + "%"
			q = q.Where("LOWER(submissions.text) LIKE ?", like)
		}
	}

	var submissions []*models.Submission
	if err := q.Limit(limit).Offset(offset).Find(&submissions).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return submissions, nil
}

// Delete removes a submission in a single statement. Replies and reactions go
// with it through the ON DELETE CASCADE constraints.
func (r *submissionRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Submission{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateSubmission(ctx, id)
	return nil
}
