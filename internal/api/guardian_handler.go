package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/tango-api/internal/api/shared"
	"github.com/phrazzld/tango-api/internal/domain"
	"github.com/phrazzld/tango-api/internal/platform/logger"
	"github.com/phrazzld/tango-api/internal/service"
)

// learnerIDParam is the path parameter naming a dependent learner.
const learnerIDParam = "learnerID"

// GuardianHandler serves read-only reports on a guardian's dependents.
type GuardianHandler struct {
	reports service.ReportService
	report  reportWriter
	logger  *slog.Logger
}

// NewGuardianHandler creates a new GuardianHandler
func NewGuardianHandler(
	learning service.LearningService,
	reports service.ReportService,
	logger *slog.Logger,
) *GuardianHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for GuardianHandler")
	}

	return &GuardianHandler{
		reports: reports,
		report:  reportWriter{learning: learning, reports: reports, now: time.Now},
		logger:  logger.With(slog.String("component", "guardian_handler")),
	}
}

// Routes mounts the guardian routes on r.
func (h *GuardianHandler) Routes(r chi.Router) {
	r.Get("/learners", h.ListLearners)
	r.Route("/learners/{"+learnerIDParam+"}", func(r chi.Router) {
		r.Get("/weak-words", h.GetWeakWords)
		r.Get("/calendar", h.GetCalendar)
		r.Get("/menu-status", h.GetMenuStatus)
	})
}

// ListLearners handles GET /learners
func (h *GuardianHandler) ListLearners(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	caller, ok := callerFromRequest(w, r, log)
	if !ok {
		return
	}

	users, err := h.reports.ListDependents(r.Context(), caller.UserID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list learners")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, learnersToResponse(users))
}

// GetWeakWords handles GET /learners/{learnerID}/weak-words
func (h *GuardianHandler) GetWeakWords(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	learner, ok := h.dependent(w, r, log)
	if !ok {
		return
	}
	h.report.weakWords(w, r, learner.ID, log)
}

// GetCalendar handles GET /learners/{learnerID}/calendar
func (h *GuardianHandler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	learner, ok := h.dependent(w, r, log)
	if !ok {
		return
	}
	h.report.calendar(w, r, learner.ID, log)
}

// GetMenuStatus handles GET /learners/{learnerID}/menu-status
func (h *GuardianHandler) GetMenuStatus(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	learner, ok := h.dependent(w, r, log)
	if !ok {
		return
	}
	h.report.menuStatus(w, r, learner.ID)
}

// dependent resolves the learner named in the path, answering 404 when the
// learner is not the caller's dependent.
func (h *GuardianHandler) dependent(w http.ResponseWriter, r *http.Request, log *slog.Logger) (*domain.User, bool) {
	caller, ok := callerFromRequest(w, r, log)
	if !ok {
		return nil, false
	}

	learnerID, err := getPathUUID(r, learnerIDParam)
	if err != nil {
		log.Debug("invalid learner ID", slog.String("value", chi.URLParam(r, learnerIDParam)))
		HandleAPIError(w, r, err, "")
		return nil, false
	}

	learner, err := h.reports.ResolveLearner(r.Context(), caller, learnerID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return nil, false
	}
	return learner, true
}
