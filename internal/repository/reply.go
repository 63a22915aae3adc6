package repository

import (
	"context"
	"errors"

	"uplift/internal/cache"
	"uplift/internal/models"

	"gorm.io/gorm"
)

// ReplyRepository defines persistence operations for replies.
type ReplyRepository interface {
	Create(ctx context.Context, reply *models.Reply) error
	GetByID(ctx context.Context, id uint) (*models.Reply, error)
	ListBySubmission(ctx context.Context, submissionID uint) ([]*models.Reply, error)
	Delete(ctx context.Context, id uint) error
}

type replyRepository struct {
	db *gorm.DB
}

// NewReplyRepository creates a new ReplyRepository.
func NewReplyRepository(db *gorm.DB) ReplyRepository {
	return &replyRepository{db: db}
}

func (r *replyRepository) Create(ctx context.Context, reply *models.Reply) error {
	if err := r.db.WithContext(ctx).Create(reply).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.SubmissionKey(reply.SubmissionID))
	return nil
}

func (r *replyRepository) GetByID(ctx context.Context, id uint) (*models.Reply, error) {
	var reply models.Reply
	if err := r.db.WithContext(ctx).Preload("User").First(&reply, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Reply", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &reply, nil
}

func (r *replyRepository) ListBySubmission(ctx context.Context, submissionID uint) ([]*models.Reply, error) {
	var replies []*models.Reply
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("submission_id = ?", submissionID).
		Order("created_at ASC").
		Find(&replies).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return replies, nil
}

func (r *replyRepository) Delete(ctx context.Context, id uint) error {
	reply, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Delete(&models.Reply{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.SubmissionKey(reply.SubmissionID))
	return nil
}
