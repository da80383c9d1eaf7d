//go:build integration

package postgres_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tango-api/internal/domain"
	"github.com/phrazzld/tango-api/internal/platform/postgres"
	"github.com/phrazzld/tango-api/internal/store"
	"github.com/phrazzld/tango-api/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoresIntegration(t *testing.T) {
	db := testdb.GetTestDB(t)
	ctx := context.Background()

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		guardian := testdb.MustInsertGuardian(t, tx)
		learner := testdb.MustInsertLearner(t, tx, guardian.ID)
		other := testdb.MustInsertGuardian(t, tx)
		apple := testdb.MustInsertItem(t, tx, "apple", "りんご", 1)
		dog := testdb.MustInsertItem(t, tx, "dog", "いぬ", 2)

		items := postgres.NewPostgresItemStore(tx, nil)
		answers := postgres.NewPostgresAnswerStore(tx, nil)
		progress := postgres.NewPostgresProgressStore(tx, nil)
		users := postgres.NewPostgresUserStore(tx, nil)

		t.Run("items", func(t *testing.T) {
			got, err := items.GetByIDs(ctx, []uuid.UUID{dog.ID, apple.ID, uuid.New()})
			require.NoError(t, err)
			require.Len(t, got, 2)
			assert.Equal(t, apple.ID, got[0].ID)

			n, err := items.CountBySection(ctx, 2)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, n, 1)
		})

		t.Run("answers", func(t *testing.T) {
			now := time.Now().UTC().Truncate(time.Microsecond)
			recent, err := domain.NewAnswer(learner.ID, apple.ID, true, false, domain.CategoryNewSection, now)
			require.NoError(t, err)
			old, err := domain.NewAnswer(learner.ID, dog.ID, false, false, domain.CategoryReview, now.Add(-40*24*time.Hour))
			require.NoError(t, err)
			require.NoError(t, answers.Append(ctx, recent))
			require.NoError(t, answers.Append(ctx, old))

			all, err := answers.List(ctx, store.AnswerFilter{LearnerID: learner.ID})
			require.NoError(t, err)
			require.Len(t, all, 2)
			assert.Equal(t, old.ID, all[0].ID)

			ids, err := answers.AnsweredItemIDs(ctx, store.AnswerFilter{LearnerID: learner.ID, Until: now.Add(-30 * 24 * time.Hour)})
			require.NoError(t, err)
			assert.Equal(t, []uuid.UUID{dog.ID}, ids)

			n, err := answers.ShiftTimestamps(ctx, learner.ID, -24*time.Hour)
			require.NoError(t, err)
			assert.Equal(t, int64(2), n)
		})

		t.Run("progress", func(t *testing.T) {
			require.NoError(t, progress.CreateIfMissing(ctx, domain.NewProgress(learner.ID)))
			require.NoError(t, progress.CreateIfMissing(ctx, domain.NewProgress(learner.ID)))

			p, err := progress.GetForUpdate(ctx, learner.ID)
			require.NoError(t, err)
			assert.Equal(t, 1, p.CurrentSection)
			assert.Nil(t, p.LastAdvanceAt)

			now := time.Now().UTC().Truncate(time.Microsecond)
			p.CurrentSection = 3
			p.LastAdvanceAt = &now
			require.NoError(t, progress.Update(ctx, p))

			got, err := progress.Get(ctx, learner.ID)
			require.NoError(t, err)
			assert.Equal(t, 3, got.CurrentSection)
			assert.True(t, now.Equal(*got.LastAdvanceAt))

			_, err = progress.Get(ctx, guardian.ID)
			assert.ErrorIs(t, err, store.ErrProgressNotFound)
		})

		t.Run("users", func(t *testing.T) {
			u, err := users.GetDependent(ctx, guardian.ID, learner.ID)
			require.NoError(t, err)
			assert.Equal(t, learner.Username, u.Username)

			_, err = users.GetDependent(ctx, other.ID, learner.ID)
			assert.ErrorIs(t, err, store.ErrUserNotFound)

			deps, err := users.ListDependents(ctx, guardian.ID)
			require.NoError(t, err)
			require.Len(t, deps, 1)
			assert.Equal(t, learner.ID, deps[0].ID)
		})

		// Runs last: a constraint violation aborts the surrounding transaction.
		t.Run("unknown item is rejected", func(t *testing.T) {
			bad, err := domain.NewAnswer(learner.ID, uuid.New(), true, false, domain.CategoryReview, time.Now())
			require.NoError(t, err)
			assert.ErrorIs(t, answers.Append(ctx, bad), store.ErrItemNotFound)
		})
	})
}
