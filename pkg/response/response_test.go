package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestSuccessWithMeta(t *testing.T) {
	rec := httptest.NewRecorder()
	SuccessWithMeta(rec, http.StatusOK, "ok", []string{"a"}, &Meta{Limit: 50, Offset: 100, Total: 120})

	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, map[string]interface{}{"limit": 50.0, "offset": 100.0, "total": 120.0}, body["meta"])
}

func TestErrorDefaults(t *testing.T) {
	tests := []struct {
		write   func(http.ResponseWriter, string)
		status  int
		message string
	}{
		{BadRequest, http.StatusBadRequest, "Bad request"},
		{Unauthorized, http.StatusUnauthorized, "Unauthorized"},
		{PaymentRequired, http.StatusPaymentRequired, "Subscription inactive"},
		{Forbidden, http.StatusForbidden, "Forbidden"},
		{NotFound, http.StatusNotFound, "Resource not found"},
		{Conflict, http.StatusConflict, "Conflict"},
		{InternalServerError, http.StatusInternalServerError, "Internal server error"},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		tt.write(rec, "")
		assert.Equal(t, tt.status, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, tt.message, body["message"])

		rec = httptest.NewRecorder()
		tt.write(rec, "custom")
		assert.Equal(t, "custom", decode(t, rec)["message"])
	}
}

func TestDatabaseError(t *testing.T) {
	rec := httptest.NewRecorder()
	DatabaseError(rec, "Failed to create appointment", errors.New(`duplicate key value violates unique constraint "appointments_pkey"`))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "Failed to create appointment", body["message"])
	assert.Contains(t, body["error"], "appointments_pkey")
}
