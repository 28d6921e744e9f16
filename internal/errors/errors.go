package errors

import (
	"fmt"
	"net/http"
)

// ErrorCode represents application-specific error codes
type ErrorCode string

const (
	// Client errors
	ErrCodeInvalidRequest   ErrorCode = "INVALID_REQUEST"
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeUnauthorized     ErrorCode = "UNAUTHORIZED"
	ErrCodeNotFound         ErrorCode = "NOT_FOUND"
	ErrCodeScriptNotFound   ErrorCode = "SCRIPT_NOT_FOUND"
	ErrCodeTooManyRequests  ErrorCode = "TOO_MANY_REQUESTS"

	// Pipeline errors
	ErrCodeFetchFailed  ErrorCode = "FETCH_FAILED"
	ErrCodeNotifyFailed ErrorCode = "NOTIFY_FAILED"

	// WhatsApp errors
	ErrCodeClientNotConnected ErrorCode = "CLIENT_NOT_CONNECTED"
	ErrCodeInvalidJID         ErrorCode = "INVALID_JID"

	// Server errors
	ErrCodeInternalError      ErrorCode = "INTERNAL_ERROR"
	ErrCodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
)

// AppError represents an application error with additional context
type AppError struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	Details    string    `json:"details,omitempty"`
	StatusCode int       `json:"-"`
	Err        error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new application error
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: getStatusCodeForError(code),
	}
}

// Wrap wraps an existing error with application context
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: getStatusCodeForError(code),
		Err:        err,
	}
}

// getStatusCodeForError maps error codes to HTTP status codes
func getStatusCodeForError(code ErrorCode) int {
	switch code {
	case ErrCodeInvalidRequest, ErrCodeValidationFailed, ErrCodeInvalidJID:
		return http.StatusBadRequest
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeNotFound, ErrCodeScriptNotFound:
		return http.StatusNotFound
	case ErrCodeTooManyRequests:
		return http.StatusTooManyRequests
	case ErrCodeFetchFailed:
		return http.StatusBadGateway
	case ErrCodeClientNotConnected, ErrCodeServiceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Common error constructors for convenience

// ValidationError creates a validation error
func ValidationError(message string) *AppError {
	return New(ErrCodeValidationFailed, message)
}

// InvalidRequest creates an invalid request error
func InvalidRequest(message string) *AppError {
	return New(ErrCodeInvalidRequest, message)
}

// ScriptNotFound creates an unknown script error
func ScriptNotFound(name string) *AppError {
	return New(ErrCodeScriptNotFound, fmt.Sprintf("Unknown script: %s", name))
}

// FetchFailed creates a document retrieval error. No report is produced.
func FetchFailed(err error) *AppError {
	appErr := Wrap(err, ErrCodeFetchFailed, "Failed to load scripts for comparison")
	if err != nil {
		appErr.Details = err.Error()
	}
	return appErr
}

// NotifyFailed creates a notification delivery error
func NotifyFailed(err error) *AppError {
	return Wrap(err, ErrCodeNotifyFailed, "Failed to send change notification")
}

// ClientNotConnected creates a client not connected error
func ClientNotConnected() *AppError {
	return New(ErrCodeClientNotConnected, "WhatsApp client is not connected")
}

// InvalidJID creates an invalid JID error
func InvalidJID(jid string) *AppError {
	return New(ErrCodeInvalidJID, fmt.Sprintf("Invalid WhatsApp JID: %s", jid))
}

// InternalError creates an internal server error
func InternalError(err error) *AppError {
	return Wrap(err, ErrCodeInternalError, "Internal server error")
}
