package repository

import (
	"context"
	"testing"

	"uplift/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertIsSingleConflictStatement(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewReactionRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "reactions" .* ON CONFLICT \("submission_id","user_id"\) DO UPDATE SET "reaction_id"=.*,"created_at"=.* RETURNING "id"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := repo.Upsert(context.Background(), 7, 3, models.ReactionLove)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoveMissingReactionIsNoOp(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewReactionRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "reactions" WHERE submission_id = .* AND user_id = .*`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.Remove(context.Background(), 7, 3)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBreakdownForGroupsInOneQuery(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewReactionRepository(db)

	mock.ExpectQuery(`SELECT submission_id, reaction_id, COUNT\(\*\) as count FROM "reactions" WHERE submission_id IN .* GROUP BY "submission_id","reaction_id"`).
		WillReturnRows(sqlmock.NewRows([]string{"submission_id", "reaction_id", "count"}).
			AddRow(1, models.ReactionLike, 3).
			AddRow(1, models.ReactionWow, 1).
			AddRow(2, models.ReactionLove, 2))

	breakdown, err := repo.BreakdownFor(context.Background(), []uint{1, 2})
	require.NoError(t, err)

	assert.EqualValues(t, 3, breakdown[1][models.ReactionLike])
	assert.EqualValues(t, 1, breakdown[1][models.ReactionWow])
	assert.EqualValues(t, 2, breakdown[2][models.ReactionLove])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBreakdownForEmptySetSkipsQuery(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewReactionRepository(db)

	breakdown, err := repo.BreakdownFor(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, breakdown)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestViewerReactionsAnonymousSkipsQuery(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewReactionRepository(db)

	mine, err := repo.ViewerReactions(context.Background(), 0, []uint{1, 2})
	require.NoError(t, err)
	assert.Empty(t, mine)
	assert.NoError(t, mock.ExpectationsWereMet())
}
