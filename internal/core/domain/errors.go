package domain

import (
	"errors"
	"net/http"
	"strings"
)

// ErrorType represents the category of an application error
type ErrorType string

const (
	ErrorTypeInvalidCredentials ErrorType = "invalid_credentials"
	ErrorTypeInvalidToken       ErrorType = "invalid_token"
	ErrorTypeUnauthorized       ErrorType = "unauthorized"
	ErrorTypeNotFound           ErrorType = "not_found"
	ErrorTypeConflict           ErrorType = "conflict"
	ErrorTypeAccessDenied       ErrorType = "access_denied"
	ErrorTypeValidation         ErrorType = "validation_error"
	ErrorTypeIllegalArgument    ErrorType = "illegal_argument"
	ErrorTypeInternal           ErrorType = "internal_error"
)

// BadRequestPrefix is the category used by validation and argument errors
const BadRequestPrefix = "bad.request"

// AppError is an error carrying the HTTP status and the client-facing message key
type AppError struct {
	Type    ErrorType
	Message string
	Code    int
}

// Error implements the error interface
func (e *AppError) Error() string {
	return string(e.Type) + ": " + e.Message
}

// Is matches errors of the same type and message
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Type == e.Type && t.Message == e.Message
}

// Common errors
var (
	ErrInvalidCredentials = &AppError{Type: ErrorTypeInvalidCredentials, Message: "invalid.credentials", Code: http.StatusUnauthorized}
	ErrInvalidToken       = &AppError{Type: ErrorTypeInvalidToken, Message: "invalid.token", Code: http.StatusUnauthorized}
	ErrUnauthorized       = &AppError{Type: ErrorTypeUnauthorized, Message: "unauthorized", Code: http.StatusUnauthorized}
	ErrUserInactive       = &AppError{Type: ErrorTypeUnauthorized, Message: "user.inactive", Code: http.StatusUnauthorized}
	ErrAccessDenied       = &AppError{Type: ErrorTypeAccessDenied, Message: "access.denied", Code: http.StatusForbidden}
	ErrNoSuchUser         = &AppError{Type: ErrorTypeUnauthorized, Message: "user.not.found", Code: http.StatusUnauthorized}
	ErrInternal           = &AppError{Type: ErrorTypeInternal, Message: "internal.server.error", Code: http.StatusInternalServerError}
)

// NotFound reports a missing entity, e.g. "university.not.found"
func NotFound(entity string) *AppError {
	return &AppError{Type: ErrorTypeNotFound, Message: entity + ".not.found", Code: http.StatusNotFound}
}

// Conflict reports a unique constraint violation, e.g. "building.conflict"
func Conflict(entity string) *AppError {
	return ConflictMessage(entity + ".conflict")
}

// ConflictMessage reports a conflict with an explicit message key
func ConflictMessage(key string) *AppError {
	return &AppError{Type: ErrorTypeConflict, Message: key, Code: http.StatusConflict}
}

// Validation reports failing input fields, each already formatted as a message key
func Validation(fields ...string) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: strings.Join(append([]string{BadRequestPrefix}, fields...), ";"),
		Code:    http.StatusBadRequest,
	}
}

// IllegalArgument reports a request that is well-formed but not acceptable
func IllegalArgument(key string) *AppError {
	return &AppError{
		Type:    ErrorTypeIllegalArgument,
		Message: BadRequestPrefix + ";" + key,
		Code:    http.StatusBadRequest,
	}
}

// AsAppError extracts an AppError; anything else becomes ErrInternal
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return ErrInternal, false
}

// IsType reports whether err is an AppError of the given type
func IsType(err error, t ErrorType) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == t
}
