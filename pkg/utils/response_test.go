package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"cmms-backend/internal/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusCreated, map[string]string{"work_order_number": "WO-000001"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "WO-000001", body["work_order_number"])
}

func TestJSONNilBody(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusNoContent, nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.Bytes())
}

func TestErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", apperrors.Validationf("title is required"), http.StatusBadRequest},
		{"not found", apperrors.NotFoundf("job 9 not found"), http.StatusNotFound},
		{"conflict", apperrors.Conflictf("requisition is already approved"), http.StatusConflict},
		{"stock", apperrors.Stockf("insufficient stock"), http.StatusUnprocessableEntity},
		{"unclassified", errors.New("pq: connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			Error(rec, tt.err)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestErrorMasksInternals(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, errors.New("pq: password authentication failed for user postgres"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "internal server error", body["error"])
	assert.NotContains(t, rec.Body.String(), "postgres")
}

func TestErrorKeepsWorkflowMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, apperrors.Conflictf("job is completed, notes are closed"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "job is completed, notes are closed", body["error"])
	assert.Equal(t, "state_conflict", body["kind"])
}
