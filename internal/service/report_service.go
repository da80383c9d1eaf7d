package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tango-api/internal/domain"
	"github.com/phrazzld/tango-api/internal/domain/drill"
	"github.com/phrazzld/tango-api/internal/platform/logger"
	"github.com/phrazzld/tango-api/internal/store"
)

// Caller identifies the authenticated user making a request.
type Caller struct {
	UserID uuid.UUID
	Role   domain.Role
}

// ReportService defines read-only reporting over a learner's answer ledger.
type ReportService interface {
	// ResolveLearner returns the learner the caller may read. A learner may
	// only read themselves; a guardian may read a learner whose guardian is
	// the caller. Every other combination returns ErrLearnerNotFound.
	ResolveLearner(ctx context.Context, caller Caller, learnerID uuid.UUID) (*domain.User, error)

	// ListDependents returns the learners managed by a guardian.
	ListDependents(ctx context.Context, guardianID uuid.UUID) ([]domain.User, error)

	// WeakReport lists the learner's weak items with their answer statistics.
	// Unknown sort keys fall back to accuracy and unknown orders to ascending.
	WeakReport(ctx context.Context, learnerID uuid.UUID, sortBy, order string) ([]drill.WeakEntry, error)

	// MonthlyReport returns one entry per day of the regional month with the
	// learner's answer counts by category and outcome. Months outside 1-12
	// return a domain validation error.
	MonthlyReport(ctx context.Context, learnerID uuid.UUID, year, month int) ([]drill.DayStats, error)
}

// reportServiceImpl implements the ReportService interface
type reportServiceImpl struct {
	users   store.UserStore
	items   store.ItemStore
	answers store.AnswerStore
	logger  *slog.Logger
}

// NewReportService creates a new ReportService.
// It returns an error if any of the required dependencies are nil.
func NewReportService(
	users store.UserStore,
	items store.ItemStore,
	answers store.AnswerStore,
	logger *slog.Logger,
) (ReportService, error) {
	if users == nil {
		return nil, domain.NewValidationError("users", "cannot be nil", domain.ErrValidation)
	}
	if items == nil {
		return nil, domain.NewValidationError("items", "cannot be nil", domain.ErrValidation)
	}
	if answers == nil {
		return nil, domain.NewValidationError("answers", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &reportServiceImpl{
		users:   users,
		items:   items,
		answers: answers,
		logger:  logger.With(slog.String("component", "report_service")),
	}, nil
}

// ResolveLearner implements ReportService.ResolveLearner
func (s *reportServiceImpl) ResolveLearner(ctx context.Context, caller Caller, learnerID uuid.UUID) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var (
		user *domain.User
		err  error
	)
	switch caller.Role {
	case domain.RoleGuardian:
		user, err = s.users.GetDependent(ctx, caller.UserID, learnerID)
	case domain.RoleLearner:
		if caller.UserID != learnerID {
			return nil, ErrLearnerNotFound
		}
		user, err = s.users.GetByID(ctx, learnerID)
	default:
		return nil, ErrLearnerNotFound
	}

	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("learner not visible to caller",
				slog.String("caller_id", caller.UserID.String()),
				slog.String("learner_id", learnerID.String()))
			return nil, ErrLearnerNotFound
		}
		return nil, NewReportServiceError("resolve_learner", "failed to load learner", err)
	}
	if user.Role != domain.RoleLearner {
		return nil, ErrLearnerNotFound
	}
	return user, nil
}

// ListDependents implements ReportService.ListDependents
func (s *reportServiceImpl) ListDependents(ctx context.Context, guardianID uuid.UUID) ([]domain.User, error) {
	users, err := s.users.ListDependents(ctx, guardianID)
	if err != nil {
		return nil, NewReportServiceError("list_dependents", "failed to list dependents", err)
	}
	return users, nil
}

// WeakReport implements ReportService.WeakReport
func (s *reportServiceImpl) WeakReport(ctx context.Context, learnerID uuid.UUID, sortBy, order string) ([]drill.WeakEntry, error) {
	answers, err := s.answers.List(ctx, store.AnswerFilter{LearnerID: learnerID})
	if err != nil {
		return nil, NewReportServiceError("weak_report", "failed to list answers", err)
	}

	ids := drill.WeakItemIDs(answers)
	if len(ids) == 0 {
		return []drill.WeakEntry{}, nil
	}

	items, err := s.items.GetByIDs(ctx, ids)
	if err != nil {
		return nil, NewReportServiceError("weak_report", "failed to load items", err)
	}
	catalog := make(map[uuid.UUID]domain.Item, len(items))
	for _, item := range items {
		catalog[item.ID] = item
	}

	entries := drill.WeakReport(answers, catalog, drill.ParseSortKey(sortBy), drill.ParseSortOrder(order))
	if entries == nil {
		entries = []drill.WeakEntry{}
	}
	return entries, nil
}

// MonthlyReport implements ReportService.MonthlyReport
func (s *reportServiceImpl) MonthlyReport(ctx context.Context, learnerID uuid.UUID, year, month int) ([]drill.DayStats, error) {
	if err := domain.ValidateMonth(month); err != nil {
		return nil, err
	}

	since, until := domain.MonthRangeUTC(year, time.Month(month))
	answers, err := s.answers.List(ctx, store.AnswerFilter{LearnerID: learnerID, Since: since, Until: until})
	if err != nil {
		return nil, NewReportServiceError("monthly_report", "failed to list answers", err)
	}
	return drill.MonthlyCalendar(year, month, answers)
}
