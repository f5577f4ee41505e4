// api/errors/errors.go
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Kind classifies an error for transport mapping and retry decisions.
type Kind string

const (
	KindValidation     Kind = "VALIDATION"
	KindAuthentication Kind = "AUTHENTICATION"
	KindForbidden      Kind = "FORBIDDEN"
	KindNotFound       Kind = "NOT_FOUND"
	KindConflict       Kind = "CONFLICT"
	KindRateLimit      Kind = "RATE_LIMIT"
	KindDatabase       Kind = "DATABASE"
	KindInternal       Kind = "INTERNAL"
)

// Status returns the HTTP status associated with the kind.
func (k Kind) Status() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindRateLimit:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// AppError is the error type returned across service boundaries.
// Code is stable and safe to show to clients; Cause never is.
type AppError struct {
	Kind       Kind
	Code       string
	Message    string
	Details    map[string]interface{}
	RetryAfter time.Duration
	Cause      error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches on Code so copies made by the With* helpers still match their sentinel.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

func (e *AppError) clone() *AppError {
	c := *e
	return &c
}

// WithCause returns a copy of e wrapping err.
func (e *AppError) WithCause(err error) *AppError {
	c := e.clone()
	c.Cause = err
	return c
}

// WithDetails returns a copy of e carrying details.
func (e *AppError) WithDetails(details map[string]interface{}) *AppError {
	c := e.clone()
	c.Details = details
	return c
}

// WithMessage returns a copy of e with a different human message.
func (e *AppError) WithMessage(message string) *AppError {
	c := e.clone()
	c.Message = message
	return c
}

// WithRetryAfter returns a copy of e telling the caller when to try again.
func (e *AppError) WithRetryAfter(d time.Duration) *AppError {
	c := e.clone()
	c.RetryAfter = d
	return c
}

func newError(kind Kind, code, message string) *AppError {
	return &AppError{Kind: kind, Code: code, Message: message}
}

func NewValidationError(code, message string) *AppError {
	return newError(KindValidation, code, message)
}

func NewAuthenticationError(code, message string) *AppError {
	return newError(KindAuthentication, code, message)
}

func NewForbiddenError(code, message string) *AppError {
	return newError(KindForbidden, code, message)
}

func NewNotFoundError(code, message string) *AppError {
	return newError(KindNotFound, code, message)
}

func NewConflictError(code, message string) *AppError {
	return newError(KindConflict, code, message)
}

func NewRateLimitError(code, message string) *AppError {
	return newError(KindRateLimit, code, message)
}

func NewDatabaseError(code, message string) *AppError {
	return newError(KindDatabase, code, message)
}

func NewInternalError(code, message string) *AppError {
	return newError(KindInternal, code, message)
}

// KindOf reports the kind of err. Errors that are not AppErrors are internal.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// StatusOf returns the HTTP status for err.
func StatusOf(err error) int {
	return KindOf(err).Status()
}

// IsRetryable reports whether the operation may succeed if repeated unchanged.
func IsRetryable(err error) bool {
	switch KindOf(err) {
	case KindDatabase, KindInternal:
		return true
	default:
		return false
	}
}

// IsClientError reports whether err was caused by the request itself.
func IsClientError(err error) bool {
	status := StatusOf(err)
	return status >= 400 && status < 500
}

// AsAppError returns err as an AppError, wrapping unknown errors as internal.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return ErrInternalServer.WithCause(err)
}
