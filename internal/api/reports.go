package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tango-api/internal/api/shared"
	"github.com/phrazzld/tango-api/internal/service"
)

// reportWriter renders the reports shared by the learner and guardian routes.
type reportWriter struct {
	learning service.LearningService
	reports  service.ReportService
	now      func() time.Time
}

func (rw reportWriter) weakWords(w http.ResponseWriter, r *http.Request, learnerID uuid.UUID, log *slog.Logger) {
	q := r.URL.Query()
	sortBy, order := q.Get("sort_by"), q.Get("order")

	entries, err := rw.reports.WeakReport(r.Context(), learnerID, sortBy, order)
	if err != nil {
		log.Debug("weak-word report failed",
			slog.String("learner_id", learnerID.String()),
			slog.String("sort_by", sortBy),
			slog.String("order", order))
		HandleAPIError(w, r, err, "Failed to build weak-word report")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, weakEntriesToResponse(entries))
}

func (rw reportWriter) calendar(w http.ResponseWriter, r *http.Request, learnerID uuid.UUID, log *slog.Logger) {
	year, month, err := monthParams(r, rw.now())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	days, err := rw.reports.MonthlyReport(r.Context(), learnerID, year, month)
	if err != nil {
		log.Debug("monthly report failed",
			slog.String("learner_id", learnerID.String()),
			slog.Int("year", year),
			slog.Int("month", month))
		HandleAPIError(w, r, err, "Failed to build calendar")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, calendarToResponse(year, month, days))
}

func (rw reportWriter) menuStatus(w http.ResponseWriter, r *http.Request, learnerID uuid.UUID) {
	status, err := rw.learning.MenuStatus(r.Context(), learnerID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load menu status")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, menuStatusToResponse(status))
}
