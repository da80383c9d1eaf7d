package shared

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/tango-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserFromContext(t *testing.T) {
	userID := uuid.New()

	t.Run("stored user", func(t *testing.T) {
		ctx := WithUser(context.Background(), userID, domain.RoleGuardian)
		got, role, ok := UserFromContext(ctx)
		require.True(t, ok)
		assert.Equal(t, userID, got)
		assert.Equal(t, domain.RoleGuardian, role)
	})

	t.Run("missing user", func(t *testing.T) {
		_, _, ok := UserFromContext(context.Background())
		assert.False(t, ok)
	})

	t.Run("nil user", func(t *testing.T) {
		_, _, ok := UserFromContext(WithUser(context.Background(), uuid.Nil, domain.RoleLearner))
		assert.False(t, ok)
	})
}

func TestTraceID(t *testing.T) {
	assert.Empty(t, GetTraceID(context.Background()))

	a := GetTraceID(SetTraceID(context.Background()))
	b := GetTraceID(SetTraceID(context.Background()))
	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)
}

type answerPayload struct {
	ItemID   string `json:"item_id"  validate:"required,uuid"`
	Category string `json:"category" validate:"required,category"`
}

func TestDecodeAndValidate(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		decodeErr  bool
		invalidErr bool
	}{
		{name: "valid", body: `{"item_id":"` + uuid.NewString() + `","category":"review"}`},
		{name: "category alias", body: `{"item_id":"` + uuid.NewString() + `","category":"today"}`},
		{name: "unknown category", body: `{"item_id":"` + uuid.NewString() + `","category":"quiz"}`, invalidErr: true},
		{name: "bad uuid", body: `{"item_id":"nope","category":"weak"}`, invalidErr: true},
		{name: "malformed json", body: `{"item_id":`, decodeErr: true},
		{name: "empty body", body: ``, decodeErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))
			w := httptest.NewRecorder()

			var p answerPayload
			err := DecodeJSON(w, r, &p)
			if tc.decodeErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			err = ValidateRequest(&p)
			if tc.invalidErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRespondWithJSON(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	RespondWithJSON(w, r, http.StatusCreated, map[string]int{"section": 3})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"section":3}`, w.Body.String())
}

func TestRespondWithErrorAndLog(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r = r.WithContext(SetTraceID(r.Context()))
	w := httptest.NewRecorder()

	RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "An unexpected error occurred",
		errors.New("dial postgres://tango:hunter2@db/tango"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "An unexpected error occurred", resp.Error)
	assert.Equal(t, GetTraceID(r.Context()), resp.TraceID)
	assert.NotContains(t, w.Body.String(), "hunter2")
}
