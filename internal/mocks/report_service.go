package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/tango-api/internal/domain"
	"github.com/phrazzld/tango-api/internal/domain/drill"
	"github.com/phrazzld/tango-api/internal/service"
)

// MockReportService implements service.ReportService for testing
type MockReportService struct {
	ResolveLearnerFn func(ctx context.Context, caller service.Caller, learnerID uuid.UUID) (*domain.User, error)
	ListDependentsFn func(ctx context.Context, guardianID uuid.UUID) ([]domain.User, error)
	WeakReportFn     func(ctx context.Context, learnerID uuid.UUID, sortBy, order string) ([]drill.WeakEntry, error)
	MonthlyReportFn  func(ctx context.Context, learnerID uuid.UUID, year, month int) ([]drill.DayStats, error)

	// Default response values
	Learner    *domain.User
	Dependents []domain.User
	Weak       []drill.WeakEntry
	Days       []drill.DayStats
	Err        error
}

var _ service.ReportService = (*MockReportService)(nil)

// ResolveLearner implements service.ReportService. Without a custom function
// it resolves every learner ID to Learner, or to a bare learner with that ID.
func (m *MockReportService) ResolveLearner(ctx context.Context, caller service.Caller, learnerID uuid.UUID) (*domain.User, error) {
	if m.ResolveLearnerFn != nil {
		return m.ResolveLearnerFn(ctx, caller, learnerID)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Learner != nil {
		return m.Learner, nil
	}
	return &domain.User{ID: learnerID, Role: domain.RoleLearner}, nil
}

// ListDependents implements service.ReportService
func (m *MockReportService) ListDependents(ctx context.Context, guardianID uuid.UUID) ([]domain.User, error) {
	if m.ListDependentsFn != nil {
		return m.ListDependentsFn(ctx, guardianID)
	}
	return m.Dependents, m.Err
}

// WeakReport implements service.ReportService
func (m *MockReportService) WeakReport(ctx context.Context, learnerID uuid.UUID, sortBy, order string) ([]drill.WeakEntry, error) {
	if m.WeakReportFn != nil {
		return m.WeakReportFn(ctx, learnerID, sortBy, order)
	}
	return m.Weak, m.Err
}

// MonthlyReport implements service.ReportService
func (m *MockReportService) MonthlyReport(ctx context.Context, learnerID uuid.UUID, year, month int) ([]drill.DayStats, error) {
	if m.MonthlyReportFn != nil {
		return m.MonthlyReportFn(ctx, learnerID, year, month)
	}
	return m.Days, m.Err
}
