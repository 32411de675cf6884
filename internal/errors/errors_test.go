package errors

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("test validation error", "field1")
	require.NotNil(t, err)

	assert.Equal(t, "[VALIDATION_ERROR] test validation error", err.Error())
	assert.Equal(t, CategoryValidation, err.Category)
	assert.Equal(t, http.StatusBadRequest, err.HTTPStatus)
	assert.Equal(t, errbuilder.CodeInvalidArgument, err.ErrCode())
	assert.True(t, IsValidation(err))
}

func TestAssessmentValidationError(t *testing.T) {
	err := NewAssessmentValidationError("Enneagram", map[string]string{
		"answers": "expected at least 18 questions, got 3",
		"q2":      "answer 9 outside scale 1-5",
	})

	assert.Equal(t, "[VALIDATION_ERROR] Invalid Enneagram assessment data", err.Error())
	assert.Equal(t, http.StatusUnprocessableEntity, err.HTTPStatus)
	assert.True(t, IsValidation(err))
	assert.False(t, IsNotFound(err))

	wrapped := fmt.Errorf("scoring: %w", err)
	assert.True(t, IsValidation(wrapped))
}

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("profile", "subject-1")
	assert.Equal(t, "[NOT_FOUND] profile not found", err.Error())
	assert.Equal(t, http.StatusNotFound, err.HTTPStatus)
	assert.True(t, IsNotFound(err))
	assert.False(t, IsValidation(err))
}

func TestStorageErrorKeepsCause(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := NewStorageError("save profile", cause)

	assert.Equal(t, CategoryStorage, err.Category)
	assert.ErrorIs(t, err, cause)
}

func TestToAppError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		category ErrorCategory
	}{
		{"nil stays nil", nil, ""},
		{"app error passes through", NewValidationError("bad"), CategoryValidation},
		{"context deadline maps to timeout", context.DeadlineExceeded, CategoryTimeout},
		{"context cancel maps to timeout", context.Canceled, CategoryTimeout},
		{"plain error maps to internal", fmt.Errorf("boom"), CategoryInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := ToAppError(tt.err)
			if tt.err == nil {
				assert.Nil(t, appErr)
				return
			}
			require.NotNil(t, appErr)
			assert.Equal(t, tt.category, appErr.Category)
		})
	}
}

func TestSafeExecuteRecoversPanic(t *testing.T) {
	var recovered interface{}
	SafeExecute(func() { panic("kaboom") }, func(r interface{}) { recovered = r })
	assert.Equal(t, "kaboom", recovered)

	ran := false
	SafeExecute(func() { ran = true }, nil)
	assert.True(t, ran)
}

func TestErrorHandlerMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/missing", func(c *gin.Context) {
		_ = c.Error(NewNotFoundError("profile", "abc"))
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/missing", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"category":"not_found"`)
}

func TestRecoveryHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RecoveryHandler())
	r.GET("/panic", func(c *gin.Context) { panic("unexpected") })

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/panic", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"category":"internal"`)
}
