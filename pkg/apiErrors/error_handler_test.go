package apiErrors

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, StatusFor(ErrNoKeywords))
	assert.Equal(t, http.StatusUnprocessableEntity, StatusFor(ErrInvalidRecord))
	assert.Equal(t, http.StatusNotImplemented, StatusFor(ErrHistoryDisabled))
	assert.Equal(t, http.StatusConflict, StatusFor(ErrCronAlreadyRunning))
	assert.Equal(t, http.StatusInternalServerError, StatusFor("XYZ_999"))
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteError(rec, ErrTooManyKeywords, "Máximo de 150 keywords por análise", map[string]any{"max": 150})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, ErrTooManyKeywords, body.Code)
	assert.Equal(t, "Máximo de 150 keywords por análise", body.Message)
	assert.Equal(t, map[string]any{"max": float64(150)}, body.Details)
}
