package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Container errors
const (
	// ErrCodeNotDeclared indicates a service was requested that has no registered factory.
	ErrCodeNotDeclared ErrorCode = "SERVICE_NOT_DECLARED"
	// ErrCodeUnknownService indicates a service name that is not part of the container schema.
	ErrCodeUnknownService ErrorCode = "UNKNOWN_SERVICE"
	// ErrCodeTypeMismatch indicates a resolved value does not match the declared type.
	ErrCodeTypeMismatch ErrorCode = "TYPE_MISMATCH"
	// ErrCodeInvalidSchema indicates a schema with empty or duplicate names.
	ErrCodeInvalidSchema ErrorCode = "INVALID_SCHEMA"
	// ErrCodeInvalidSetup indicates a container setup callback misbehaved.
	ErrCodeInvalidSetup ErrorCode = "INVALID_SETUP"
)

// Availability errors
const (
	// ErrCodeTimeout indicates an operation did not finish before its deadline.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
)

// Request errors
const (
	// ErrCodeNotFound indicates the requested resource was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeConflict indicates the request conflicts with current state.
	ErrCodeConflict ErrorCode = "CONFLICT"
	// ErrCodeUnauthorized indicates the request is unauthorized.
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)
