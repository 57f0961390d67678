package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AnshRaj112/vidtube-backend/pkg/apierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestJSON_WritesSuccessEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusCreated, map[string]string{"username": "annlee"}, "User registered Successfully")

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	body := decode(t, rec)
	assert.Equal(t, float64(201), body["statusCode"])
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "User registered Successfully", body["message"])
	assert.Equal(t, "annlee", body["data"].(map[string]interface{})["username"])
}

func TestJSON_EmptyDataIsAnObject(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusOK, Empty(), "User logged Out")

	body := decode(t, rec)
	assert.Equal(t, map[string]interface{}{}, body["data"])
}

func TestError_UsesStatusFromAPIError(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/login", nil)
	Error(rec, req, apierror.Auth("Invalid user credentials"))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Invalid user credentials", body["message"])
	assert.NotContains(t, body, "data")
}

func TestError_HidesInternalCause(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/history", nil)
	Error(rec, req, errors.New("connection refused: mongodb://admin:secret@db"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "secret")
	assert.Equal(t, "Internal server error", decode(t, rec)["message"])
}
