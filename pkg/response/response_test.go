package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"martial-service/pkg/apperrors"
)

func perform(t *testing.T, err error) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	Error(c, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestErrorStatusMapping(t *testing.T) {
	tests := []struct {
		kind   apperrors.Kind
		status int
	}{
		{apperrors.Validation, http.StatusBadRequest},
		{apperrors.AlreadyVoted, http.StatusBadRequest},
		{apperrors.Unauthorized, http.StatusUnauthorized},
		{apperrors.Forbidden, http.StatusForbidden},
		{apperrors.NotFound, http.StatusNotFound},
		{apperrors.Conflict, http.StatusConflict},
		{apperrors.Internal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		rec, body := perform(t, apperrors.New(tt.kind, "boom"))
		assert.Equal(t, tt.status, rec.Code)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "boom", body["message"])
	}
}

func TestErrorUnclassified(t *testing.T) {
	rec, body := perform(t, errors.New("database exploded"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Unexpected server error", body["message"])
	assert.Equal(t, "database exploded", body["error"])
}

func TestErrorWrappedDetail(t *testing.T) {
	rec, body := perform(t, apperrors.Wrap(apperrors.Validation, "Invalid input data", errors.New("missing field")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid input data", body["message"])
	assert.Equal(t, "missing field", body["error"])
}

func TestOKEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	OK(c, gin.H{"imageUrl": "http://minio/x.png"})

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "http://minio/x.png", body["imageUrl"])
}
