package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/phrazzld/tango-api/internal/domain"
	"github.com/phrazzld/tango-api/internal/service"
	"github.com/phrazzld/tango-api/internal/service/auth"
	"github.com/phrazzld/tango-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized, "Token expired"},
		{"wrong token type", auth.ErrWrongTokenType, http.StatusUnauthorized, "Invalid token"},
		{"learner not found", service.ErrLearnerNotFound, http.StatusNotFound, "Learner not found"},
		{"wrapped item not found", fmt.Errorf("submit: %w", service.ErrItemNotFound), http.StatusNotFound, "Item not found"},
		{"store not found", store.ErrUserNotFound, http.StatusNotFound, "Resource not found"},
		{
			"invalid month",
			domain.NewValidationError("month", "must be between 1 and 12", domain.ErrInvalidMonth),
			http.StatusBadRequest,
			"Invalid month: must be between 1 and 12",
		},
		{"bare validation", domain.ErrValidation, http.StatusBadRequest, "Validation error"},
		{"service failure", service.NewLearningServiceError("menu_status", "failed", errors.New("db down")), http.StatusInternalServerError, "An unexpected error occurred"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "An unexpected error occurred"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.status, MapErrorToStatusCode(tc.err))
			assert.Equal(t, tc.message, GetSafeErrorMessage(tc.err))
		})
	}
}

func TestGetSafeErrorMessage_Nil(t *testing.T) {
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))
}
