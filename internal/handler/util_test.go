package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteErrorEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, http.StatusNotFound, "conversation not found")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var env errorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "not_found", env.Error.Code)
	assert.Equal(t, "conversation not found", env.Error.Message)
}

func TestStatusCode(t *testing.T) {
	assert.Equal(t, "bad_request", statusCode(http.StatusBadRequest))
	assert.Equal(t, "internal_server_error", statusCode(http.StatusInternalServerError))
	assert.Equal(t, "unknown", statusCode(799))
}
