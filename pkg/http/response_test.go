package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "hotelbooking/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{
			name:        "validation",
			err:         apperrors.Validation("startDate cannot be same as endDate", nil, map[string]any{"rule": "zero_length_stay"}),
			wantStatus:  http.StatusBadRequest,
			wantCode:    apperrors.CodeValidation,
			wantMessage: "startDate cannot be same as endDate",
		},
		{
			name:        "not found",
			err:         apperrors.NotFoundWithID("Booking", "42"),
			wantStatus:  http.StatusNotFound,
			wantCode:    apperrors.CodeNotFound,
			wantMessage: "Booking not found",
		},
		{
			name:        "internal hides cause",
			err:         apperrors.Internal("Failed to save booking", errors.New("connection reset")),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    apperrors.CodeInternal,
			wantMessage: "Internal server error",
		},
		{
			name:        "plain error",
			err:         errors.New("boom"),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    apperrors.CodeInternal,
			wantMessage: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			require.NoError(t, WriteError(rec, tt.err))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body apperrors.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Code)
			assert.Equal(t, tt.wantMessage, body.Message)
		})
	}
}

func TestWriteSuccessEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, WriteCreated(rec, map[string]string{"id": "1"}))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"data":{"id":"1"}}`, rec.Body.String())
}

func TestWriteAccepted_NoBody(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, WriteAccepted(rec, nil))

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Empty(t, rec.Body.String())
}
