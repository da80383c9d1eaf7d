package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tango-api/internal/domain"
	"github.com/phrazzld/tango-api/internal/domain/drill"
	"github.com/phrazzld/tango-api/internal/platform/logger"
	"github.com/phrazzld/tango-api/internal/store"
	"golang.org/x/sync/errgroup"
)

// SectionStatus is the outcome of a section progression check.
type SectionStatus struct {
	Section       int
	Advanced      bool
	LastAdvanceAt time.Time
}

// NewSectionQuiz is the drill for the learner's current section.
type NewSectionQuiz struct {
	SectionStatus
	Items []domain.Item
}

// SubmitAnswerRequest is a learner's answer to one item.
type SubmitAnswerRequest struct {
	ItemID   uuid.UUID
	Answer   string
	Category string
	HintUsed bool
}

// AnswerResult reports whether an answer was correct along with the
// expected spelling.
type AnswerResult struct {
	Correct       bool
	CorrectAnswer string
	Phonetic      string
}

// MenuStatus summarizes how many items each drill would offer right now.
type MenuStatus struct {
	Section       int
	SectionItems  int
	ReviewCounts  map[drill.Window]int
	WeakCounts    map[drill.Window]int
	LastAdvanceAt *time.Time
}

// LearningService defines the operations a learner performs on their own drills.
type LearningService interface {
	// CurrentSection runs the daily progression check for the learner and
	// returns the resulting section. The section advances by exactly one when
	// the regional calendar day differs from the day of the last advance, and
	// never more than once per regional day. A learner's first visit only
	// records the timestamp. Missing progress is created on demand.
	//
	// Returns ErrLearnerNotFound if the learner does not exist.
	CurrentSection(ctx context.Context, learnerID uuid.UUID) (*SectionStatus, error)

	// NewSectionQuiz runs the progression check and returns every item of the
	// resulting section in random order.
	NewSectionQuiz(ctx context.Context, learnerID uuid.UUID) (*NewSectionQuiz, error)

	// ReviewQuiz returns up to drill.MaxQuizItems distinct items the learner
	// has answered within the window, chosen uniformly at random.
	ReviewQuiz(ctx context.Context, learnerID uuid.UUID, window drill.Window) ([]domain.Item, error)

	// WeakQuiz returns up to drill.MaxQuizItems weak items, classified from the
	// answers inside the window and chosen uniformly at random.
	WeakQuiz(ctx context.Context, learnerID uuid.UUID, window drill.Window) ([]domain.Item, error)

	// SubmitAnswer grades an answer, appends it to the ledger, and returns the
	// result.
	//
	// Returns ErrItemNotFound for an unknown item and a domain validation
	// error for an unknown category.
	SubmitAnswer(ctx context.Context, learnerID uuid.UUID, req SubmitAnswerRequest) (*AnswerResult, error)

	// MenuStatus counts the items each drill would offer without advancing
	// the section.
	MenuStatus(ctx context.Context, learnerID uuid.UUID) (*MenuStatus, error)
}

// learningServiceImpl implements the LearningService interface
type learningServiceImpl struct {
	db       *sql.DB
	items    store.ItemStore
	answers  store.AnswerStore
	progress store.ProgressStore
	logger   *slog.Logger
	opts     options
}

// NewLearningService creates a new LearningService.
// It returns an error if any of the required dependencies are nil.
func NewLearningService(
	db *sql.DB,
	items store.ItemStore,
	answers store.AnswerStore,
	progress store.ProgressStore,
	logger *slog.Logger,
	opts ...Option,
) (LearningService, error) {
	if db == nil {
		return nil, domain.NewValidationError("db", "cannot be nil", domain.ErrValidation)
	}
	if items == nil {
		return nil, domain.NewValidationError("items", "cannot be nil", domain.ErrValidation)
	}
	if answers == nil {
		return nil, domain.NewValidationError("answers", "cannot be nil", domain.ErrValidation)
	}
	if progress == nil {
		return nil, domain.NewValidationError("progress", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &learningServiceImpl{
		db:       db,
		items:    items,
		answers:  answers,
		progress: progress,
		logger:   logger.With(slog.String("component", "learning_service")),
		opts:     o,
	}, nil
}

// CurrentSection implements LearningService.CurrentSection
func (s *learningServiceImpl) CurrentSection(ctx context.Context, learnerID uuid.UUID) (*SectionStatus, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	now := s.opts.now().UTC()

	var status SectionStatus
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		progressTx := s.progress.WithTx(tx)

		if err := progressTx.CreateIfMissing(ctx, domain.NewProgress(learnerID)); err != nil {
			return err
		}

		// The row lock serializes concurrent checks for the same learner.
		p, err := progressTx.GetForUpdate(ctx, learnerID)
		if err != nil {
			return err
		}

		firstVisit := p.LastAdvanceAt == nil
		advanced := p.Advance(now)
		if advanced || firstVisit {
			if err := progressTx.Update(ctx, p); err != nil {
				return err
			}
		}

		status = SectionStatus{
			Section:       p.CurrentSection,
			Advanced:      advanced,
			LastAdvanceAt: *p.LastAdvanceAt,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrInvalidEntity) || errors.Is(err, store.ErrProgressNotFound) {
			log.Debug("progress check for unknown learner",
				slog.String("learner_id", learnerID.String()))
			return nil, ErrLearnerNotFound
		}
		log.Error("section progression check failed",
			slog.String("error", err.Error()),
			slog.String("learner_id", learnerID.String()))
		return nil, NewLearningServiceError("current_section", "failed to check section progression", err)
	}

	if status.Advanced {
		log.Info("learner advanced to next section",
			slog.String("learner_id", learnerID.String()),
			slog.Int("section", status.Section))
	}
	return &status, nil
}

// NewSectionQuiz implements LearningService.NewSectionQuiz
func (s *learningServiceImpl) NewSectionQuiz(ctx context.Context, learnerID uuid.UUID) (*NewSectionQuiz, error) {
	status, err := s.CurrentSection(ctx, learnerID)
	if err != nil {
		return nil, err
	}

	items, err := s.items.ListBySection(ctx, status.Section)
	if err != nil {
		return nil, NewLearningServiceError("new_section_quiz", "failed to list section items", err)
	}

	return &NewSectionQuiz{
		SectionStatus: *status,
		Items:         drill.Shuffle(items, s.opts.shuffle),
	}, nil
}

// ReviewQuiz implements LearningService.ReviewQuiz
func (s *learningServiceImpl) ReviewQuiz(ctx context.Context, learnerID uuid.UUID, window drill.Window) ([]domain.Item, error) {
	ids, err := s.answers.AnsweredItemIDs(ctx, answerFilter(learnerID, window, s.opts.now()))
	if err != nil {
		return nil, NewLearningServiceError("review_quiz", "failed to list answered items", err)
	}
	return s.pick(ctx, "review_quiz", ids)
}

// WeakQuiz implements LearningService.WeakQuiz
func (s *learningServiceImpl) WeakQuiz(ctx context.Context, learnerID uuid.UUID, window drill.Window) ([]domain.Item, error) {
	answers, err := s.answers.List(ctx, answerFilter(learnerID, window, s.opts.now()))
	if err != nil {
		return nil, NewLearningServiceError("weak_quiz", "failed to list answers", err)
	}
	return s.pick(ctx, "weak_quiz", drill.WeakItemIDs(answers))
}

// pick samples up to MaxQuizItems IDs and loads them in random order.
func (s *learningServiceImpl) pick(ctx context.Context, op string, ids []uuid.UUID) ([]domain.Item, error) {
	ids = drill.Sample(ids, drill.MaxQuizItems, s.opts.shuffle)
	if len(ids) == 0 {
		return []domain.Item{}, nil
	}
	items, err := s.items.GetByIDs(ctx, ids)
	if err != nil {
		return nil, NewLearningServiceError(op, "failed to load items", err)
	}
	return drill.Shuffle(items, s.opts.shuffle), nil
}

func answerFilter(learnerID uuid.UUID, window drill.Window, now time.Time) store.AnswerFilter {
	since, until := window.Range(now)
	return store.AnswerFilter{LearnerID: learnerID, Since: since, Until: until}
}

// SubmitAnswer implements LearningService.SubmitAnswer
func (s *learningServiceImpl) SubmitAnswer(ctx context.Context, learnerID uuid.UUID, req SubmitAnswerRequest) (*AnswerResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	category, err := domain.ParseCategory(req.Category)
	if err != nil {
		return nil, err
	}

	item, err := s.items.GetByID(ctx, req.ItemID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, ErrItemNotFound
		}
		return nil, NewLearningServiceError("submit_answer", "failed to load item", err)
	}

	correct := item.Matches(req.Answer)
	answer, err := domain.NewAnswer(learnerID, item.ID, correct, req.HintUsed, category, s.opts.now())
	if err != nil {
		return nil, err
	}

	if err := s.answers.Append(ctx, answer); err != nil {
		switch {
		case errors.Is(err, store.ErrItemNotFound):
			return nil, ErrItemNotFound
		case errors.Is(err, store.ErrUserNotFound), errors.Is(err, store.ErrInvalidEntity):
			return nil, ErrLearnerNotFound
		}
		log.Error("failed to record answer",
			slog.String("error", err.Error()),
			slog.String("learner_id", learnerID.String()),
			slog.String("item_id", item.ID.String()))
		return nil, NewLearningServiceError("submit_answer", "failed to record answer", err)
	}

	log.Debug("answer recorded",
		slog.String("learner_id", learnerID.String()),
		slog.String("item_id", item.ID.String()),
		slog.Bool("correct", correct),
		slog.Bool("hint_used", req.HintUsed),
		slog.String("category", string(category)))

	return &AnswerResult{
		Correct:       correct,
		CorrectAnswer: item.Spelling,
		Phonetic:      item.Phonetic,
	}, nil
}

// MenuStatus implements LearningService.MenuStatus
// The counts are independent reads, so they run concurrently.
func (s *learningServiceImpl) MenuStatus(ctx context.Context, learnerID uuid.UUID) (*MenuStatus, error) {
	now := s.opts.now()
	status := &MenuStatus{
		Section:      domain.InitialSection,
		ReviewCounts: make(map[drill.Window]int, len(drill.Windows)),
		WeakCounts:   make(map[drill.Window]int, len(drill.Windows)),
	}
	reviewCounts := make([]int, len(drill.Windows))

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		p, err := s.progress.Get(gctx, learnerID)
		switch {
		case err == nil:
			status.Section = p.CurrentSection
			status.LastAdvanceAt = p.LastAdvanceAt
		case !store.IsNotFoundError(err):
			return err
		}
		n, err := s.items.CountBySection(gctx, status.Section)
		if err != nil {
			return err
		}
		status.SectionItems = n
		return nil
	})

	for i, w := range drill.Windows {
		g.Go(func() error {
			ids, err := s.answers.AnsweredItemIDs(gctx, answerFilter(learnerID, w, now))
			if err != nil {
				return err
			}
			reviewCounts[i] = len(ids)
			return nil
		})
	}

	var answers []domain.Answer
	g.Go(func() error {
		var err error
		answers, err = s.answers.List(gctx, store.AnswerFilter{LearnerID: learnerID})
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, NewLearningServiceError("menu_status", "failed to compute counts", err)
	}

	for i, w := range drill.Windows {
		status.ReviewCounts[w] = reviewCounts[i]
		status.WeakCounts[w] = len(drill.WeakItemIDs(drill.FilterAnswers(answers, w, now)))
	}
	return status, nil
}
