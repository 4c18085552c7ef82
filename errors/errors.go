package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// HTTPStatus is the recommended HTTP status code for this error.
	HTTPStatus int `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: httpStatus}
}

// HasCode reports whether err, or any error it wraps, is an AppError with code.
func HasCode(err error, code ErrorCode) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}

// IsNotDeclared reports whether err is a SERVICE_NOT_DECLARED error.
func IsNotDeclared(err error) bool { return HasCode(err, ErrCodeNotDeclared) }

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// --- Container error constructors ---

// NotDeclared creates an error for a service that has no registered factory.
func NotDeclared(service string) *AppError {
	return &AppError{
		Code: ErrCodeNotDeclared, Message: fmt.Sprintf("Service %s not declared on this container", service),
		HTTPStatus: http.StatusInternalServerError,
		Details:    map[string]any{"service": service},
	}
}

// UnknownService creates an error for a name outside the container schema.
func UnknownService(service string) *AppError {
	return &AppError{
		Code: ErrCodeUnknownService, Message: fmt.Sprintf("Service %s is not part of the container schema", service),
		HTTPStatus: http.StatusInternalServerError,
		Details:    map[string]any{"service": service},
	}
}

// TypeMismatch creates an error for a value whose type differs from the declared one.
func TypeMismatch(service string, expected, actual any) *AppError {
	return &AppError{
		Code: ErrCodeTypeMismatch, Message: fmt.Sprintf("Service %s is %v, expected %v", service, actual, expected),
		HTTPStatus: http.StatusInternalServerError,
		Details: map[string]any{
			"service":  service,
			"expected": fmt.Sprint(expected),
			"actual":   fmt.Sprint(actual),
		},
	}
}

// InvalidSchema creates an error for a malformed container schema.
func InvalidSchema(reason string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidSchema, Message: fmt.Sprintf("Invalid container schema: %s", reason),
		HTTPStatus: http.StatusInternalServerError,
	}
}

// InvalidSetup creates an error for a setup callback that did not produce a container.
func InvalidSetup(reason string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidSetup, Message: fmt.Sprintf("Invalid container setup: %s", reason),
		HTTPStatus: http.StatusInternalServerError,
	}
}

// Timeout creates an error for an operation that exceeded its deadline.
func Timeout(operation string) *AppError {
	return &AppError{
		Code: ErrCodeTimeout, Message: fmt.Sprintf("%s did not finish in time", operation),
		HTTPStatus: http.StatusGatewayTimeout,
		Details:    map[string]any{"operation": operation},
	}
}

// --- Request error constructors ---

// NotFound creates a new AppError for a resource that was not found.
func NotFound(resource, id string) *AppError {
	details := map[string]any{"resource": resource}
	if id != "" {
		details["id"] = id
	}
	return &AppError{
		Code: ErrCodeNotFound, Message: fmt.Sprintf("The requested %s was not found.", resource),
		HTTPStatus: http.StatusNotFound, Details: details,
	}
}

// InvalidInput creates a new AppError for invalid input.
func InvalidInput(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("Invalid input: %s", reason),
		HTTPStatus: http.StatusBadRequest, Details: details,
	}
}

// Conflict creates a new AppError for a request the current state rejects.
func Conflict(reason string) *AppError {
	return &AppError{
		Code: ErrCodeConflict, Message: reason,
		HTTPStatus: http.StatusConflict,
	}
}

// Unauthorized creates a new AppError for unauthorized access.
func Unauthorized(reason string) *AppError {
	if reason == "" {
		reason = "Authentication required."
	}
	return &AppError{
		Code: ErrCodeUnauthorized, Message: reason,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// Internal creates a new AppError for an internal server error.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred. Please try again or contact support.",
		HTTPStatus: http.StatusInternalServerError, Cause: cause,
	}
}
