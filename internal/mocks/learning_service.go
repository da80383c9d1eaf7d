package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/tango-api/internal/domain"
	"github.com/phrazzld/tango-api/internal/domain/drill"
	"github.com/phrazzld/tango-api/internal/service"
)

// MockLearningService implements service.LearningService for testing
type MockLearningService struct {
	CurrentSectionFn func(ctx context.Context, learnerID uuid.UUID) (*service.SectionStatus, error)
	NewSectionQuizFn func(ctx context.Context, learnerID uuid.UUID) (*service.NewSectionQuiz, error)
	ReviewQuizFn     func(ctx context.Context, learnerID uuid.UUID, window drill.Window) ([]domain.Item, error)
	WeakQuizFn       func(ctx context.Context, learnerID uuid.UUID, window drill.Window) ([]domain.Item, error)
	SubmitAnswerFn   func(ctx context.Context, learnerID uuid.UUID, req service.SubmitAnswerRequest) (*service.AnswerResult, error)
	MenuStatusFn     func(ctx context.Context, learnerID uuid.UUID) (*service.MenuStatus, error)

	// Default response values
	Status *service.SectionStatus
	Items  []domain.Item
	Result *service.AnswerResult
	Menu   *service.MenuStatus
	Err    error

	mu         sync.Mutex
	LearnerIDs []uuid.UUID
	Windows    []drill.Window
}

var _ service.LearningService = (*MockLearningService)(nil)

func (m *MockLearningService) record(learnerID uuid.UUID, window drill.Window) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LearnerIDs = append(m.LearnerIDs, learnerID)
	if window != "" {
		m.Windows = append(m.Windows, window)
	}
}

// CurrentSection implements service.LearningService
func (m *MockLearningService) CurrentSection(ctx context.Context, learnerID uuid.UUID) (*service.SectionStatus, error) {
	m.record(learnerID, "")
	if m.CurrentSectionFn != nil {
		return m.CurrentSectionFn(ctx, learnerID)
	}
	return m.Status, m.Err
}

// NewSectionQuiz implements service.LearningService
func (m *MockLearningService) NewSectionQuiz(ctx context.Context, learnerID uuid.UUID) (*service.NewSectionQuiz, error) {
	m.record(learnerID, "")
	if m.NewSectionQuizFn != nil {
		return m.NewSectionQuizFn(ctx, learnerID)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	quiz := &service.NewSectionQuiz{Items: m.Items}
	if m.Status != nil {
		quiz.SectionStatus = *m.Status
	}
	return quiz, nil
}

// ReviewQuiz implements service.LearningService
func (m *MockLearningService) ReviewQuiz(ctx context.Context, learnerID uuid.UUID, window drill.Window) ([]domain.Item, error) {
	m.record(learnerID, window)
	if m.ReviewQuizFn != nil {
		return m.ReviewQuizFn(ctx, learnerID, window)
	}
	return m.Items, m.Err
}

// WeakQuiz implements service.LearningService
func (m *MockLearningService) WeakQuiz(ctx context.Context, learnerID uuid.UUID, window drill.Window) ([]domain.Item, error) {
	m.record(learnerID, window)
	if m.WeakQuizFn != nil {
		return m.WeakQuizFn(ctx, learnerID, window)
	}
	return m.Items, m.Err
}

// SubmitAnswer implements service.LearningService
func (m *MockLearningService) SubmitAnswer(ctx context.Context, learnerID uuid.UUID, req service.SubmitAnswerRequest) (*service.AnswerResult, error) {
	m.record(learnerID, "")
	if m.SubmitAnswerFn != nil {
		return m.SubmitAnswerFn(ctx, learnerID, req)
	}
	return m.Result, m.Err
}

// MenuStatus implements service.LearningService
func (m *MockLearningService) MenuStatus(ctx context.Context, learnerID uuid.UUID) (*service.MenuStatus, error) {
	m.record(learnerID, "")
	if m.MenuStatusFn != nil {
		return m.MenuStatusFn(ctx, learnerID)
	}
	return m.Menu, m.Err
}
