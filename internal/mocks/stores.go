package mocks

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tango-api/internal/domain"
	"github.com/phrazzld/tango-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// MockItemStore implements store.ItemStore with testify/mock.
type MockItemStore struct {
	mock.Mock
}

var (
	_ store.ItemStore     = (*MockItemStore)(nil)
	_ store.AnswerStore   = (*MockAnswerStore)(nil)
	_ store.ProgressStore = (*MockProgressStore)(nil)
	_ store.UserStore     = (*MockUserStore)(nil)
)

func (m *MockItemStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func (m *MockItemStore) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Item, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}

func (m *MockItemStore) ListBySection(ctx context.Context, section int) ([]domain.Item, error) {
	args := m.Called(ctx, section)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}

func (m *MockItemStore) CountBySection(ctx context.Context, section int) (int, error) {
	args := m.Called(ctx, section)
	return args.Int(0), args.Error(1)
}

// MockAnswerStore implements store.AnswerStore with testify/mock.
// WithTx returns the mock itself.
type MockAnswerStore struct {
	mock.Mock
}

func (m *MockAnswerStore) Append(ctx context.Context, answer *domain.Answer) error {
	return m.Called(ctx, answer).Error(0)
}

func (m *MockAnswerStore) List(ctx context.Context, filter store.AnswerFilter) ([]domain.Answer, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Answer), args.Error(1)
}

func (m *MockAnswerStore) AnsweredItemIDs(ctx context.Context, filter store.AnswerFilter) ([]uuid.UUID, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockAnswerStore) Count(ctx context.Context, learnerID uuid.UUID) (int, error) {
	args := m.Called(ctx, learnerID)
	return args.Int(0), args.Error(1)
}

func (m *MockAnswerStore) ShiftTimestamps(ctx context.Context, learnerID uuid.UUID, by time.Duration) (int64, error) {
	args := m.Called(ctx, learnerID, by)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAnswerStore) WithTx(tx *sql.Tx) store.AnswerStore {
	return m
}

// MockProgressStore implements store.ProgressStore with testify/mock.
// WithTx returns the mock itself.
type MockProgressStore struct {
	mock.Mock
}

func (m *MockProgressStore) Get(ctx context.Context, learnerID uuid.UUID) (*domain.Progress, error) {
	args := m.Called(ctx, learnerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Progress), args.Error(1)
}

func (m *MockProgressStore) GetForUpdate(ctx context.Context, learnerID uuid.UUID) (*domain.Progress, error) {
	args := m.Called(ctx, learnerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Progress), args.Error(1)
}

func (m *MockProgressStore) CreateIfMissing(ctx context.Context, progress *domain.Progress) error {
	return m.Called(ctx, progress).Error(0)
}

func (m *MockProgressStore) Update(ctx context.Context, progress *domain.Progress) error {
	return m.Called(ctx, progress).Error(0)
}

func (m *MockProgressStore) ShiftLastAdvance(ctx context.Context, learnerID uuid.UUID, by time.Duration) error {
	return m.Called(ctx, learnerID, by).Error(0)
}

func (m *MockProgressStore) WithTx(tx *sql.Tx) store.ProgressStore {
	return m
}

// MockUserStore implements store.UserStore with testify/mock.
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserStore) GetDependent(ctx context.Context, guardianID, learnerID uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, guardianID, learnerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserStore) ListDependents(ctx context.Context, guardianID uuid.UUID) ([]domain.User, error) {
	args := m.Called(ctx, guardianID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}
