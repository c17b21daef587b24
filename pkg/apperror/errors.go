package apperror

import (
	"errors"
	"net/http"
)

// AppError represents an application error with HTTP status code.
// Reason is a stable machine-readable code; two AppErrors with the same
// non-empty Reason compare equal under errors.Is.
type AppError struct {
	Code    int          `json:"code"`
	Reason  string       `json:"reason,omitempty"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Is reports whether target carries the same reason code.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok || e.Reason == "" {
		return false
	}
	return e.Reason == t.Reason
}

// Common errors
var (
	ErrNotFound           = &AppError{Code: http.StatusNotFound, Reason: "not_found", Message: "Resource not found"}
	ErrUnauthorized       = &AppError{Code: http.StatusUnauthorized, Reason: "unauthorized", Message: "Unauthorized"}
	ErrForbidden          = &AppError{Code: http.StatusForbidden, Reason: "forbidden", Message: "Forbidden"}
	ErrBadRequest         = &AppError{Code: http.StatusBadRequest, Reason: "bad_request", Message: "Bad request"}
	ErrInternalServer     = &AppError{Code: http.StatusInternalServerError, Message: "Internal server error"}
	ErrConflict           = &AppError{Code: http.StatusConflict, Message: "Resource already exists"}
	ErrInvalidCredentials = &AppError{Code: http.StatusUnauthorized, Reason: "invalid_credentials", Message: "Invalid email or password"}
	ErrAccountDisabled    = &AppError{Code: http.StatusForbidden, Reason: "account_disabled", Message: "Account is disabled"}
	ErrInvalidToken       = &AppError{Code: http.StatusUnauthorized, Reason: "invalid_token", Message: "Invalid token"}
)

// Sales and register errors
var (
	ErrNoActiveSession = &AppError{
		Code:    http.StatusConflict,
		Reason:  "no_active_session",
		Message: "No open cash register session for today",
	}
	ErrProductNotFoundOrInactive = &AppError{
		Code:    http.StatusUnprocessableEntity,
		Reason:  "product_not_found_or_inactive",
		Message: "One or more products do not exist or are inactive",
	}
	ErrPaymentMethodNotFoundOrInactive = &AppError{
		Code:    http.StatusUnprocessableEntity,
		Reason:  "payment_method_not_found_or_inactive",
		Message: "Payment method does not exist or is inactive",
	}
	ErrAlreadyOpenToday = &AppError{
		Code:    http.StatusConflict,
		Reason:  "already_open_today",
		Message: "A cash register session already exists for today",
	}
	ErrPreviousSessionOpen = &AppError{
		Code:    http.StatusConflict,
		Reason:  "previous_session_open",
		Message: "A session from a previous day is still open and must be closed first",
	}
	ErrAlreadyClosed = &AppError{
		Code:    http.StatusConflict,
		Reason:  "already_closed",
		Message: "Cash register session is already closed",
	}
	ErrSessionNotFound = &AppError{
		Code:    http.StatusNotFound,
		Reason:  "session_not_found",
		Message: "Cash register session not found",
	}
)

// NewAppError creates a new application error
func NewAppError(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Reason:  "validation_failed",
		Message: "Validation failed",
		Errors:  fieldErrors,
	}
}

// NewFieldError is a shortcut for a validation error on a single field.
func NewFieldError(field, message string) *AppError {
	return NewValidationError([]FieldError{{Field: field, Message: message}})
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Reason:  "not_found",
		Message: resource + " not found",
	}
}

// NewConflictError creates a conflict error with a custom message
func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Reason:  "conflict",
		Message: message,
	}
}

// NewBadRequestError creates a bad request error with a custom message
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Reason:  "bad_request",
		Message: message,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: err.Error(),
	}
}
