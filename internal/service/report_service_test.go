package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tango-api/internal/domain"
	"github.com/phrazzld/tango-api/internal/mocks"
	"github.com/phrazzld/tango-api/internal/service"
	"github.com/phrazzld/tango-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type reportFixture struct {
	users   *mocks.MockUserStore
	items   *mocks.MockItemStore
	answers *mocks.MockAnswerStore
	svc     service.ReportService
}

func newReportFixture(t *testing.T) *reportFixture {
	t.Helper()
	f := &reportFixture{
		users:   &mocks.MockUserStore{},
		items:   &mocks.MockItemStore{},
		answers: &mocks.MockAnswerStore{},
	}
	var err error
	f.svc, err = service.NewReportService(f.users, f.items, f.answers, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() {
		f.users.AssertExpectations(t)
		f.items.AssertExpectations(t)
		f.answers.AssertExpectations(t)
	})
	return f
}

func TestNewReportService_ValidatesDependencies(t *testing.T) {
	_, err := service.NewReportService(nil, &mocks.MockItemStore{}, &mocks.MockAnswerStore{}, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = service.NewReportService(&mocks.MockUserStore{}, nil, &mocks.MockAnswerStore{}, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = service.NewReportService(&mocks.MockUserStore{}, &mocks.MockItemStore{}, nil, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestResolveLearner(t *testing.T) {
	ctx := context.Background()
	guardianID := uuid.New()
	learner := &domain.User{ID: uuid.New(), Username: "hana", Role: domain.RoleLearner, GuardianID: &guardianID}

	t.Run("guardian reads own dependent", func(t *testing.T) {
		f := newReportFixture(t)
		f.users.On("GetDependent", mock.Anything, guardianID, learner.ID).Return(learner, nil)

		got, err := f.svc.ResolveLearner(ctx, service.Caller{UserID: guardianID, Role: domain.RoleGuardian}, learner.ID)
		require.NoError(t, err)
		assert.Equal(t, learner, got)
	})

	t.Run("guardian cannot read another family", func(t *testing.T) {
		f := newReportFixture(t)
		other := uuid.New()
		f.users.On("GetDependent", mock.Anything, other, learner.ID).Return(nil, store.ErrUserNotFound)

		_, err := f.svc.ResolveLearner(ctx, service.Caller{UserID: other, Role: domain.RoleGuardian}, learner.ID)
		assert.ErrorIs(t, err, service.ErrLearnerNotFound)
	})

	t.Run("learner reads self", func(t *testing.T) {
		f := newReportFixture(t)
		f.users.On("GetByID", mock.Anything, learner.ID).Return(learner, nil)

		got, err := f.svc.ResolveLearner(ctx, service.Caller{UserID: learner.ID, Role: domain.RoleLearner}, learner.ID)
		require.NoError(t, err)
		assert.Equal(t, learner.ID, got.ID)
	})

	t.Run("learner cannot read a sibling", func(t *testing.T) {
		f := newReportFixture(t)
		_, err := f.svc.ResolveLearner(ctx, service.Caller{UserID: uuid.New(), Role: domain.RoleLearner}, learner.ID)
		assert.ErrorIs(t, err, service.ErrLearnerNotFound)
		f.users.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("guardian id is not a learner", func(t *testing.T) {
		f := newReportFixture(t)
		guardian := &domain.User{ID: guardianID, Username: "mama", Role: domain.RoleGuardian}
		f.users.On("GetDependent", mock.Anything, guardianID, guardianID).Return(guardian, nil)

		_, err := f.svc.ResolveLearner(ctx, service.Caller{UserID: guardianID, Role: domain.RoleGuardian}, guardianID)
		assert.ErrorIs(t, err, service.ErrLearnerNotFound)
	})

	t.Run("unknown role", func(t *testing.T) {
		f := newReportFixture(t)
		_, err := f.svc.ResolveLearner(ctx, service.Caller{UserID: guardianID, Role: domain.Role("admin")}, learner.ID)
		assert.ErrorIs(t, err, service.ErrLearnerNotFound)
	})

	t.Run("store failure", func(t *testing.T) {
		f := newReportFixture(t)
		dbErr := errors.New("timeout")
		f.users.On("GetDependent", mock.Anything, guardianID, learner.ID).Return(nil, dbErr)

		_, err := f.svc.ResolveLearner(ctx, service.Caller{UserID: guardianID, Role: domain.RoleGuardian}, learner.ID)
		assert.ErrorIs(t, err, dbErr)
		assert.NotErrorIs(t, err, service.ErrLearnerNotFound)
	})
}

func TestListDependents(t *testing.T) {
	f := newReportFixture(t)
	guardianID := uuid.New()
	dependents := []domain.User{
		{ID: uuid.New(), Username: "hana", Role: domain.RoleLearner, GuardianID: &guardianID},
		{ID: uuid.New(), Username: "taro", Role: domain.RoleLearner, GuardianID: &guardianID},
	}
	f.users.On("ListDependents", mock.Anything, guardianID).Return(dependents, nil)

	got, err := f.svc.ListDependents(context.Background(), guardianID)
	require.NoError(t, err)
	assert.Equal(t, dependents, got)
}

func TestWeakReport(t *testing.T) {
	learnerID := uuid.New()
	ctx := context.Background()
	allAnswers := store.AnswerFilter{LearnerID: learnerID}

	t.Run("sorted by accuracy descending", func(t *testing.T) {
		f := newReportFixture(t)
		bad := domain.Item{ID: uuid.New(), Spelling: "bad", Gloss: "わるい", Section: 1}
		worse := domain.Item{ID: uuid.New(), Spelling: "worse", Gloss: "もっとわるい", Section: 1}
		answers := []domain.Answer{
			{ItemID: bad.ID, Correct: true, AnsweredAt: fixedNow},
			{ItemID: bad.ID, AnsweredAt: fixedNow},
			{ItemID: worse.ID, AnsweredAt: fixedNow},
			{ItemID: worse.ID, Correct: true, HintUsed: true, AnsweredAt: fixedNow},
		}
		f.answers.On("List", mock.Anything, allAnswers).Return(answers, nil)
		f.items.On("GetByIDs", mock.Anything, mock.Anything).Return([]domain.Item{bad, worse}, nil)

		entries, err := f.svc.WeakReport(ctx, learnerID, "accuracy", "desc")
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "bad", entries[0].Item.Spelling)
		assert.Equal(t, 0.5, entries[0].Accuracy)
		assert.Equal(t, "worse", entries[1].Item.Spelling)
		assert.Equal(t, 0.0, entries[1].Accuracy)
		assert.Equal(t, 1, entries[1].HintCount)
		assert.Equal(t, 1, entries[1].CorrectCount)
		assert.Equal(t, 2, entries[1].TotalAttempts)
	})

	t.Run("nothing weak", func(t *testing.T) {
		f := newReportFixture(t)
		f.answers.On("List", mock.Anything, allAnswers).
			Return([]domain.Answer{{ItemID: uuid.New(), Correct: true, AnsweredAt: fixedNow}}, nil)

		entries, err := f.svc.WeakReport(ctx, learnerID, "", "")
		require.NoError(t, err)
		assert.NotNil(t, entries)
		assert.Empty(t, entries)
		f.items.AssertNotCalled(t, "GetByIDs", mock.Anything, mock.Anything)
	})

	t.Run("list failure", func(t *testing.T) {
		f := newReportFixture(t)
		f.answers.On("List", mock.Anything, allAnswers).Return(nil, errors.New("boom"))

		_, err := f.svc.WeakReport(ctx, learnerID, "", "")
		var svcErr *service.ServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, "weak_report", svcErr.Operation)
	})
}

func TestMonthlyReport(t *testing.T) {
	learnerID := uuid.New()
	ctx := context.Background()

	t.Run("invalid month", func(t *testing.T) {
		f := newReportFixture(t)
		for _, month := range []int{0, 13, -1} {
			_, err := f.svc.MonthlyReport(ctx, learnerID, 2024, month)
			assert.ErrorIs(t, err, domain.ErrValidation)
		}
		f.answers.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	})

	t.Run("leap february", func(t *testing.T) {
		f := newReportFixture(t)
		since, until := domain.MonthRangeUTC(2024, time.February)
		// 2024-02-29 08:00 regional.
		answeredAt := time.Date(2024, 2, 28, 23, 0, 0, 0, time.UTC)
		answers := []domain.Answer{
			{ItemID: uuid.New(), Correct: true, Category: domain.CategoryReview, AnsweredAt: answeredAt},
			{ItemID: uuid.New(), Category: domain.CategoryWeak, AnsweredAt: answeredAt},
		}
		f.answers.On("List", mock.Anything, store.AnswerFilter{LearnerID: learnerID, Since: since, Until: until}).
			Return(answers, nil)

		days, err := f.svc.MonthlyReport(ctx, learnerID, 2024, 2)
		require.NoError(t, err)
		require.Len(t, days, 29)
		last := days[28]
		assert.Equal(t, 29, last.Date.Day)
		assert.Equal(t, 1, last.Count(domain.CategoryReview, domain.OutcomeCorrect))
		assert.Equal(t, 1, last.Count(domain.CategoryWeak, domain.OutcomeIncorrect))
		assert.Equal(t, 2, last.Total())
		assert.Zero(t, days[27].Total())
	})

	t.Run("store failure", func(t *testing.T) {
		f := newReportFixture(t)
		f.answers.On("List", mock.Anything, mock.Anything).Return(nil, errors.New("boom"))

		_, err := f.svc.MonthlyReport(ctx, learnerID, 2024, 5)
		assert.Error(t, err)
	})
}

