package common

import (
	"fmt"
	"net/http"
)

// FieldError describes one failing input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// AppError is an error with a client-facing status and message. Err holds the
// internal cause and is never rendered in production.
type AppError struct {
	Status  int
	Message string
	Fields  []FieldError
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func newAppError(status int, message string) *AppError {
	return &AppError{Status: status, Message: message}
}

var (
	ErrDuplicateEmail       = newAppError(http.StatusConflict, "Email already registered")
	ErrTrainerEmailExists   = newAppError(http.StatusConflict, "Trainer email already exists")
	ErrInvalidCredentials   = newAppError(http.StatusUnauthorized, "Invalid credentials")
	ErrWrongCredentials     = newAppError(http.StatusUnauthorized, "Wrong credentials")
	ErrAccountDeactivated   = newAppError(http.StatusForbidden, "Account is deactivated")
	ErrPortalAccessDisabled = newAppError(http.StatusForbidden, "Trainer portal access is disabled for this account.")
	ErrForbidden            = newAppError(http.StatusForbidden, "Insufficient permissions")
	ErrCannotDeactivateSelf = newAppError(http.StatusForbidden, "You cannot deactivate your own account")
	ErrEmailNotFound        = newAppError(http.StatusNotFound, "Email not found")
	ErrUserNotFound         = newAppError(http.StatusNotFound, "User not found")
	ErrTrainerNotFound      = newAppError(http.StatusNotFound, "Trainer not found")
	ErrCourseNotFound       = newAppError(http.StatusNotFound, "Course not found")
	ErrNoToken              = newAppError(http.StatusUnauthorized, "No token")
	ErrInvalidToken         = newAppError(http.StatusUnauthorized, "Invalid token")
	ErrTokenExpired         = newAppError(http.StatusUnauthorized, "Token expired")
	ErrStorageNotConfigured = newAppError(http.StatusServiceUnavailable, "Image storage is not configured")
	ErrTooManyRequests      = newAppError(http.StatusTooManyRequests, "Too many requests, please try again later.")
)

// NewValidationError aggregates every failing field into one 422 error.
func NewValidationError(fields []FieldError) *AppError {
	return &AppError{
		Status:  http.StatusUnprocessableEntity,
		Message: "Validation failed",
		Fields:  fields,
	}
}

// NewStoreError wraps a credential store or infrastructure failure. The
// operation name and cause are logged, never shown to clients in production.
func NewStoreError(operation string, err error) *AppError {
	return &AppError{
		Status:  http.StatusInternalServerError,
		Message: "Internal server error",
		Err:     fmt.Errorf("%s: %w", operation, err),
	}
}
