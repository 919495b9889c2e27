package apperrors

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_ErrorAndUnwrap(t *testing.T) {
	inner := errors.New("row not found")
	appErr := Wrap(inner, CodeNotFound, "candidate", "Candidate not found", http.StatusNotFound)

	assert.Contains(t, appErr.Error(), "candidate")
	assert.Contains(t, appErr.Error(), "Candidate not found")
	assert.Equal(t, inner, appErr.Unwrap())
	assert.True(t, errors.Is(appErr, inner))
}

func TestAppError_MarshalHidesInternals(t *testing.T) {
	inner := errors.New("pq: connection refused")
	appErr := Wrap(inner, CodeInternalError, "system", "Internal server error", http.StatusInternalServerError)

	raw, err := json.Marshal(appErr)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "connection refused")
	assert.Contains(t, string(raw), "INTERNAL_ERROR")
}

func TestAsAppError(t *testing.T) {
	appErr := New(CodeConflict, "import", "queue full", http.StatusConflict)

	got, ok := AsAppError(appErr)
	assert.True(t, ok)
	assert.Equal(t, appErr, got)

	_, ok = AsAppError(errors.New("plain"))
	assert.False(t, ok)
}

func TestHandleError_StatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   ErrorCode
	}{
		{"not found", ErrNotFound(errors.New("missing")), http.StatusNotFound, CodeNotFound},
		{"already exists", ErrAlreadyExists(errors.New("dup")), http.StatusConflict, CodeAlreadyExists},
		{"invalid status", ErrInvalidStatus("pipeline", "illegal move"), http.StatusBadRequest, CodeInvalidStatus},
		{"tenant mismatch", ErrTenantMismatch("candidate"), http.StatusForbidden, CodeForbidden},
		{"unauthorized", NewUnauthorizedError("no token"), http.StatusUnauthorized, CodeUnauthorized},
		{"forbidden", NewForbiddenError("nope"), http.StatusForbidden, CodeForbidden},
		{"bad request", NewBadRequestError("bad"), http.StatusBadRequest, CodeValidationFailed},
		{"credentials", ErrInvalidCredentials, http.StatusUnauthorized, CodeInvalidCredentials},
		{"verdict duplicate", ErrVerdictAlreadySubmitted, http.StatusConflict, CodeConflict},
		{"terminal status", ErrTerminalStatus, http.StatusConflict, CodeInvalidStatus},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, CodeInternalError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)

			HandleError(c, tc.err)

			assert.Equal(t, tc.wantStatus, w.Code)

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			require.NotNil(t, resp.Error)
			assert.Equal(t, tc.wantCode, resp.Error.Code)
		})
	}
}
