package service

import (
	"context"
	"strings"
	"testing"

	"uplift/internal/models"
	"uplift/internal/moderation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSubmissionPersistsAcceptedText(t *testing.T) {
	var saved *models.Submission
	repo := &stubSubmissionRepo{
		createFn: func(_ context.Context, submission *models.Submission) error {
			submission.ID = 1
			saved = submission
			return nil
		},
	}
	svc := NewSubmissionService(repo, &stubReactionRepo{}, acceptAll())

	got, err := svc.Create(context.Background(), CreateSubmissionInput{UserID: 7, Text: "Great news today!"})
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "Great news today!", saved.Text)
	assert.False(t, saved.Negative)
	require.NotNil(t, saved.UserID)
	assert.EqualValues(t, 7, *saved.UserID)
	assert.EqualValues(t, 1, got.ID)
}

func TestCreateSubmissionRejectedTextNeverPersisted(t *testing.T) {
	created := false
	repo := &stubSubmissionRepo{
		createFn: func(context.Context, *models.Submission) error {
			created = true
			return nil
		},
	}
	svc := NewSubmissionService(repo, &stubReactionRepo{}, rejectAll())

	_, err := svc.Create(context.Background(), CreateSubmissionInput{UserID: 7, Text: "this is terrible"})
	assert.ErrorIs(t, err, moderation.ErrRejected)
	assert.False(t, created, "rejected text must not reach the repository")
}

func TestCreateSubmissionEmptyText(t *testing.T) {
	svc := NewSubmissionService(&stubSubmissionRepo{}, &stubReactionRepo{}, acceptAll())

	_, err := svc.Create(context.Background(), CreateSubmissionInput{UserID: 7, Text: "   \n"})
	assert.ErrorIs(t, err, moderation.ErrEmptyContent)
}

func TestCreateSubmissionTooLong(t *testing.T) {
	svc := NewSubmissionService(&stubSubmissionRepo{}, &stubReactionRepo{}, acceptAll())

	_, err := svc.Create(context.Background(), CreateSubmissionInput{
		UserID: 7,
		Text:   strings.Repeat("a", maxSubmissionLen+1),
	})
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestDeleteSubmissionOwnerAndManager(t *testing.T) {
	deleted := 0
	repo := &stubSubmissionRepo{
		getByIDFn: func(_ context.Context, id uint) (*models.Submission, error) {
			return &models.Submission{ID: id, UserID: ptr(7)}, nil
		},
		deleteFn: func(context.Context, uint) error {
			deleted++
			return nil
		},
	}
	svc := NewSubmissionService(repo, &stubReactionRepo{}, acceptAll())

	// Owner.
	require.NoError(t, svc.Delete(context.Background(), DeleteSubmissionInput{SubmissionID: 1, UserID: 7}))

	// Manager who is not the owner.
	require.NoError(t, svc.Delete(context.Background(), DeleteSubmissionInput{SubmissionID: 1, UserID: 9, Manager: true}))

	assert.Equal(t, 2, deleted)
}

func TestDeleteSubmissionDeniedForStranger(t *testing.T) {
	repo := &stubSubmissionRepo{
		getByIDFn: func(_ context.Context, id uint) (*models.Submission, error) {
			return &models.Submission{ID: id, UserID: ptr(7)}, nil
		},
		deleteFn: func(context.Context, uint) error {
			t.Fatal("delete must not be called")
			return nil
		},
	}
	svc := NewSubmissionService(repo, &stubReactionRepo{}, acceptAll())

	err := svc.Delete(context.Background(), DeleteSubmissionInput{SubmissionID: 1, UserID: 9})
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "FORBIDDEN", appErr.Code)
}

func TestReactValidatesReactionType(t *testing.T) {
	svc := NewSubmissionService(&stubSubmissionRepo{}, &stubReactionRepo{}, acceptAll())

	err := svc.React(context.Background(), 7, 1, 99)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestReactUpserts(t *testing.T) {
	var gotSubmission, gotUser uint
	var gotReaction int
	reactions := &stubReactionRepo{
		upsertFn: func(_ context.Context, submissionID, userID uint, reactionID int) error {
			gotSubmission, gotUser, gotReaction = submissionID, userID, reactionID
			return nil
		},
	}
	svc := NewSubmissionService(&stubSubmissionRepo{}, reactions, acceptAll())

	require.NoError(t, svc.React(context.Background(), 7, 3, models.ReactionLaugh))
	assert.EqualValues(t, 3, gotSubmission)
	assert.EqualValues(t, 7, gotUser)
	assert.Equal(t, models.ReactionLaugh, gotReaction)
}
