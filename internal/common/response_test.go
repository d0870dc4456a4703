package common

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/angple/arena-backend/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err      error
		expected int
	}{
		{nil, http.StatusOK},
		{ErrUnauthorized, http.StatusUnauthorized},
		{ErrPostLocked, http.StatusForbidden},
		{ErrPostNotFound, http.StatusNotFound},
		{fmt.Errorf("wrapped: %w", ErrReplyNotFound), http.StatusNotFound},
		{ErrContentTooShort, http.StatusBadRequest},
		{NewValidationError("content", "required"), http.StatusBadRequest},
		{ErrAddressNotResolved, http.StatusBadRequest},
		{errors.New("driver: bad connection"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, StatusFor(tt.err), "%v", tt.err)
	}
}

func TestNewPage(t *testing.T) {
	assert.Equal(t, Page{Page: 1, Limit: 15}, NewPage(0, 0, 15))
	assert.Equal(t, Page{Page: 1, Limit: 20}, NewPage(-3, -1, 20))
	assert.Equal(t, Page{Page: 4, Limit: 100}, NewPage(4, 500, 20))
	assert.Equal(t, 30, NewPage(3, 15, 20).Offset())
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, int64(0), TotalPages(0, 15))
	assert.Equal(t, int64(1), TotalPages(15, 15))
	assert.Equal(t, int64(2), TotalPages(16, 15))
	assert.Equal(t, int64(7), TotalPages(61, 10))
}

func TestHandleError_Envelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger.SetOutput(io.Discard)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/x", nil)

	HandleError(c, NewValidationError("content", "must be at least 10 characters"), "Failed")

	require.Equal(t, http.StatusBadRequest, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Validation failed", body["error"])
	assert.Equal(t, "BAD_REQUEST", body["code"])
	details := body["details"].(map[string]interface{})
	assert.Equal(t, "content", details["field"])
}

func TestHandleError_InternalUsesFallback(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger.SetOutput(io.Discard)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/x", nil)

	HandleError(c, errors.New("dial tcp: refused"), "Failed to load post")

	require.Equal(t, http.StatusInternalServerError, w.Code)
	var body ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Failed to load post", body.Error)
	assert.Equal(t, "dial tcp: refused", body.Details)
}
