package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/tango-api/internal/api/shared"
	"github.com/phrazzld/tango-api/internal/domain"
	"github.com/phrazzld/tango-api/internal/platform/logger"
	"github.com/phrazzld/tango-api/internal/service"
)

// LearningHandler serves a learner's own drills and reports.
type LearningHandler struct {
	learning service.LearningService
	reports  service.ReportService
	report   reportWriter
	logger   *slog.Logger
}

// NewLearningHandler creates a new LearningHandler
func NewLearningHandler(
	learning service.LearningService,
	reports service.ReportService,
	logger *slog.Logger,
) *LearningHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for LearningHandler")
	}

	return &LearningHandler{
		learning: learning,
		reports:  reports,
		report:   reportWriter{learning: learning, reports: reports, now: time.Now},
		logger:   logger.With(slog.String("component", "learning_handler")),
	}
}

// Routes mounts the learner routes on r.
func (h *LearningHandler) Routes(r chi.Router) {
	r.Get("/section", h.GetSection)
	r.Get("/quiz/new-section", h.GetNewSectionQuiz)
	r.Get("/quiz/review", h.GetReviewQuiz)
	r.Get("/quiz/weak", h.GetWeakQuiz)
	r.Post("/answers", h.SubmitAnswer)
	r.Get("/menu-status", h.GetMenuStatus)
	r.Get("/weak-words", h.GetWeakWords)
	r.Get("/calendar", h.GetCalendar)
}

// GetSection handles GET /section. It runs the daily progression check.
func (h *LearningHandler) GetSection(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	caller, ok := callerFromRequest(w, r, log)
	if !ok {
		return
	}

	status, err := h.learning.CurrentSection(r.Context(), caller.UserID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to check section")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, SectionResponse{
		Section:       status.Section,
		Advanced:      status.Advanced,
		LastAdvanceAt: status.LastAdvanceAt,
	})
}

// GetNewSectionQuiz handles GET /quiz/new-section
func (h *LearningHandler) GetNewSectionQuiz(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	caller, ok := callerFromRequest(w, r, log)
	if !ok {
		return
	}

	quiz, err := h.learning.NewSectionQuiz(r.Context(), caller.UserID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to build quiz")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, QuizResponse{
		Section:  quiz.Section,
		Advanced: quiz.Advanced,
		Items:    itemsToResponse(quiz.Items),
	})
}

// GetReviewQuiz handles GET /quiz/review?range=week|month|over_month|all
func (h *LearningHandler) GetReviewQuiz(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	caller, ok := callerFromRequest(w, r, log)
	if !ok {
		return
	}

	window := windowParam(r)
	items, err := h.learning.ReviewQuiz(r.Context(), caller.UserID, window)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to build quiz")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, QuizResponse{Window: window, Items: itemsToResponse(items)})
}

// GetWeakQuiz handles GET /quiz/weak?range=week|month|over_month|all
func (h *LearningHandler) GetWeakQuiz(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	caller, ok := callerFromRequest(w, r, log)
	if !ok {
		return
	}

	window := windowParam(r)
	items, err := h.learning.WeakQuiz(r.Context(), caller.UserID, window)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to build quiz")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, QuizResponse{Window: window, Items: itemsToResponse(items)})
}

// SubmitAnswer handles POST /answers
func (h *LearningHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	caller, ok := callerFromRequest(w, r, log)
	if !ok {
		return
	}

	var req SubmitAnswerRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	// Validated as a UUID above.
	itemID := uuid.MustParse(req.ItemID)

	result, err := h.learning.SubmitAnswer(r.Context(), caller.UserID, service.SubmitAnswerRequest{
		ItemID:   itemID,
		Answer:   req.Answer,
		Category: req.Category,
		HintUsed: req.HintUsed,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to submit answer")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AnswerResponse{
		Correct:       result.Correct,
		CorrectAnswer: result.CorrectAnswer,
		Phonetic:      result.Phonetic,
	})
}

// GetMenuStatus handles GET /menu-status
func (h *LearningHandler) GetMenuStatus(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	caller, ok := callerFromRequest(w, r, log)
	if !ok {
		return
	}
	h.report.menuStatus(w, r, caller.UserID)
}

// GetWeakWords handles GET /weak-words?sort_by=&order=
func (h *LearningHandler) GetWeakWords(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	learner, ok := h.self(w, r, log)
	if !ok {
		return
	}
	h.report.weakWords(w, r, learner.ID, log)
}

// GetCalendar handles GET /calendar?year=&month=
func (h *LearningHandler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	learner, ok := h.self(w, r, log)
	if !ok {
		return
	}
	h.report.calendar(w, r, learner.ID, log)
}

// self resolves the caller as a learner, writing an error response on failure.
func (h *LearningHandler) self(w http.ResponseWriter, r *http.Request, log *slog.Logger) (*domain.User, bool) {
	caller, ok := callerFromRequest(w, r, log)
	if !ok {
		return nil, false
	}
	learner, err := h.reports.ResolveLearner(r.Context(), caller, caller.UserID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return nil, false
	}
	return learner, true
}
