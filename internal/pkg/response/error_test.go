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

	"github.com/jasonwuio/clubhub-backend/internal/pkg/apperror"
)

func performError(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/test", nil)

	Error(c, err)
	return w
}

func TestErrorMapsDomainKinds(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"validation", apperror.Validation("bad input"), http.StatusBadRequest, "bad input"},
		{"unauthorized", apperror.Unauthorized("missing token"), http.StatusUnauthorized, "missing token"},
		{"not found", apperror.NotFound("missing club"), http.StatusNotFound, "missing club"},
		{"forbidden", apperror.Forbidden("not the owner"), http.StatusForbidden, "not the owner"},
		{"conflict", apperror.Conflict("email already used"), http.StatusConflict, "email already used"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performError(t, tt.err)
			assert.Equal(t, tt.wantStatus, w.Code)

			var body ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantBody, body.Error)
		})
	}
}

func TestErrorHidesStorageDetails(t *testing.T) {
	w := performError(t, apperror.Storage(errors.New("pq: connection refused"), "load club"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
	assert.NotContains(t, w.Body.String(), "load club")
}

func TestErrorHandlesUnknownErrors(t *testing.T) {
	w := performError(t, errors.New("some cryptic driver failure"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "cryptic")
}
