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
	Message() string   // User-facing message
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

func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message.
// errors.Is against the original value still matches.
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

func (e *BaseError) Message() string {
	return e.message
}

func (e *BaseError) Details() string {
	return e.details
}

// Predefined error types
var (
	ErrAccountAlreadyExists = NewBaseError(
		http.StatusConflict,
		"ACCOUNT_ALREADY_EXISTS",
		"User already exists with that email or username",
		"",
	)

	ErrAccountNotFound = NewBaseError(
		http.StatusBadRequest,
		"ACCOUNT_NOT_FOUND",
		"There is no user with that email, make sure it is the right email or sign up",
		"",
	)

	ErrInvalidCredentials = NewBaseError(
		http.StatusBadRequest,
		"INVALID_CREDENTIALS",
		"Password is wrong",
		"",
	)

	// ErrSessionInvalid covers a missing, malformed, mis-signed or expired token.
	ErrSessionInvalid = NewBaseError(
		http.StatusBadRequest,
		"SESSION_INVALID",
		"Your session has expired, please sign in again",
		"",
	)

	ErrAlreadySignedIn = NewBaseError(
		http.StatusBadRequest,
		"ALREADY_SIGNED_IN",
		"You are already signed in",
		"",
	)

	ErrPasswordHashFailed = NewBaseError(
		http.StatusInternalServerError,
		"PASSWORD_HASH_FAILED",
		"Password could not be processed",
		"",
	)

	ErrTokenIssueFailed = NewBaseError(
		http.StatusInternalServerError,
		"TOKEN_ISSUE_FAILED",
		"Session could not be created",
		"",
	)

	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)
)

// StoreUnavailableError reports that the account store failed to answer.
type StoreUnavailableError struct {
	err     error
	details string
}

// NewStoreUnavailableError wraps a store failure; details names the operation.
func NewStoreUnavailableError(err error, details string) AppError {
	return &StoreUnavailableError{
		err:     err,
		details: details,
	}
}

func (e *StoreUnavailableError) Error() string {
	return errors.Wrapf(e.err, "account store unavailable (%s)", e.details).Error()
}

// Unwrap exposes the driver error to errors.Is / errors.As.
func (e *StoreUnavailableError) Unwrap() error {
	return e.err
}

func (e *StoreUnavailableError) HTTPCode() int {
	return http.StatusServiceUnavailable
}

func (e *StoreUnavailableError) ErrorCode() string {
	return "STORE_UNAVAILABLE"
}

func (e *StoreUnavailableError) Message() string {
	return "Account store is unavailable, please try again later"
}

func (e *StoreUnavailableError) Details() string {
	return e.details
}
