package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/tango-api/internal/api/shared"
	"github.com/phrazzld/tango-api/internal/domain"
	"github.com/phrazzld/tango-api/internal/domain/drill"
	"github.com/phrazzld/tango-api/internal/service"
)

// callerFromRequest returns the authenticated caller placed in the context
// by the auth middleware. It writes a 401 response when none is present.
func callerFromRequest(w http.ResponseWriter, r *http.Request, log *slog.Logger) (service.Caller, bool) {
	userID, role, ok := shared.UserFromContext(r.Context())
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return service.Caller{}, false
	}
	return service.Caller{UserID: userID, Role: role}, true
}

// getPathUUID extracts a UUID from the URL path parameters.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(paramName, "has invalid format", domain.ErrInvalidID)
	}
	return id, nil
}

// windowParam reads the "range" query parameter. Unknown values mean all.
func windowParam(r *http.Request) drill.Window {
	return drill.ParseWindow(r.URL.Query().Get("range"))
}

// monthParams reads the "year" and "month" query parameters, defaulting each
// to the regional month containing now.
func monthParams(r *http.Request, now time.Time) (year, month int, err error) {
	today := domain.RegionalDate(now)
	year, month = today.Year, int(today.Month)

	q := r.URL.Query()
	if v := q.Get("year"); v != "" {
		if year, err = strconv.Atoi(v); err != nil {
			return 0, 0, domain.NewValidationError("year", "must be an integer", domain.ErrValidation)
		}
	}
	if v := q.Get("month"); v != "" {
		if month, err = strconv.Atoi(v); err != nil {
			return 0, 0, domain.NewValidationError("month", "must be an integer", domain.ErrInvalidMonth)
		}
	}
	return year, month, nil
}
