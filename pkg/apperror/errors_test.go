package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_IsMatchesOnReason(t *testing.T) {
	wrapped := fmt.Errorf("create sale: %w", ErrNoActiveSession)

	assert.True(t, errors.Is(wrapped, ErrNoActiveSession))
	assert.False(t, errors.Is(wrapped, ErrAlreadyClosed))

	copyErr := &AppError{Code: http.StatusConflict, Reason: "no_active_session", Message: "other text"}
	assert.True(t, errors.Is(copyErr, ErrNoActiveSession))
}

func TestAppError_IsIgnoresEmptyReason(t *testing.T) {
	a := NewAppError(http.StatusTeapot, "a")
	b := NewAppError(http.StatusTeapot, "b")
	assert.False(t, errors.Is(a, b))
}

func TestGetAppError(t *testing.T) {
	appErr := GetAppError(fmt.Errorf("wrap: %w", ErrSessionNotFound))
	assert.Equal(t, http.StatusNotFound, appErr.Code)
	assert.Equal(t, "session_not_found", appErr.Reason)

	plain := GetAppError(errors.New("db down"))
	assert.Equal(t, http.StatusInternalServerError, plain.Code)
	assert.Equal(t, "db down", plain.Message)
}

func TestNewFieldError(t *testing.T) {
	err := NewFieldError("items", "at least one item is required")
	assert.Equal(t, http.StatusUnprocessableEntity, err.Code)
	assert.Len(t, err.Errors, 1)
	assert.Equal(t, "items", err.Errors[0].Field)
}
