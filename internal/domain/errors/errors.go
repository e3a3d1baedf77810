package errors

import (
	"net/http"

	"github.com/pkg/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Is matches any BaseError with the same error code, so values derived with
// WithDetails still match the predefined error.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)

	return ok && t.errorCode == e.errorCode
}

// Predefined error types
var (
	// Validation-related errors
	ErrValidationFailed = NewBaseError(http.StatusBadRequest, "VALIDATION_FAILED", "Input validation failed", "")
	ErrInvalidRole      = NewBaseError(http.StatusBadRequest, "INVALID_ROLE", "Role must be one of admin, staff, accountant, owner", "")

	// User-related errors
	ErrUserNotFound       = NewBaseError(http.StatusNotFound, "USER_NOT_FOUND", "User not found", "")
	ErrUserAlreadyExists  = NewBaseError(http.StatusConflict, "USER_ALREADY_EXISTS", "A user with this email address already exists", "")
	ErrUserCreationFailed = NewBaseError(http.StatusInternalServerError, "USER_CREATION_FAILED", "Failed to create user", "")
	ErrUserUpdateFailed   = NewBaseError(http.StatusInternalServerError, "USER_UPDATE_FAILED", "Failed to update user", "")

	// Business-related errors
	ErrBusinessNotFound       = NewBaseError(http.StatusNotFound, "BUSINESS_NOT_FOUND", "Business not found", "")
	ErrBusinessCreationFailed = NewBaseError(http.StatusInternalServerError, "BUSINESS_CREATION_FAILED", "Failed to create business", "")

	// Authentication-related errors
	ErrInvalidCredentials = NewBaseError(http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password", "")
	ErrUnauthorized       = NewBaseError(http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required", "")
	ErrPasswordHashFailed = NewBaseError(http.StatusInternalServerError, "PASSWORD_HASH_FAILED", "Failed to process password", "")
	ErrTokenIssueFailed   = NewBaseError(http.StatusInternalServerError, "TOKEN_ISSUE_FAILED", "Failed to issue access token", "")

	// Transaction-related errors
	ErrTransactionFailed = NewBaseError(http.StatusInternalServerError, "TRANSACTION_FAILED", "Database transaction failed", "")

	// General errors
	ErrInternalError = NewBaseError(http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", "")
	ErrForbidden     = NewBaseError(http.StatusForbidden, "FORBIDDEN", "Permission denied", "")
	ErrNotFound      = NewBaseError(http.StatusNotFound, "NOT_FOUND", "Resource not found", "")
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "Database execution failed"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}

// Unwrap exposes the driver error, e.g. for context cancellation checks.
func (e *DatabaseExecuteError) Unwrap() error {
	return e.err
}
