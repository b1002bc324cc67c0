package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	ErrCodeNotFound      ErrorCode = "NOT_FOUND"
	ErrCodeUnauthorized  ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden     ErrorCode = "FORBIDDEN"
	ErrCodeBadRequest    ErrorCode = "BAD_REQUEST"
	ErrCodeConflict      ErrorCode = "CONFLICT"
	ErrCodeInternal      ErrorCode = "INTERNAL_ERROR"
	ErrCodeValidation    ErrorCode = "VALIDATION_ERROR"
	ErrCodeDatabaseError ErrorCode = "DATABASE_ERROR"
)

type AppError struct {
	Code       ErrorCode
	Message    string
	HTTPStatus int
	Cause      error
	Details    map[string]string
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

// Is сравнивает ошибки по коду и сообщению, чтобы errors.Is работал
// с предопределёнными значениями вроде ErrJobNotFound.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// IsInternal сообщает, что ошибка не должна раскрываться клиенту.
func (e *AppError) IsInternal() bool {
	return e.HTTPStatus >= http.StatusInternalServerError
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
	}
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
		Cause:      err,
	}
}

// Validation создаёт ошибку валидации с деталями по полям.
func Validation(message string, details map[string]string) *AppError {
	e := New(ErrCodeValidation, message)
	e.Details = details
	return e
}

func codeToHTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeForbidden:
		return http.StatusForbidden
	case ErrCodeBadRequest, ErrCodeValidation:
		return http.StatusBadRequest
	case ErrCodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrCodeInternal
}

func IsNotFound(err error) bool {
	return CodeOf(err) == ErrCodeNotFound
}

func IsForbidden(err error) bool {
	return CodeOf(err) == ErrCodeForbidden
}

func IsValidation(err error) bool {
	return CodeOf(err) == ErrCodeValidation
}

func IsConflict(err error) bool {
	return CodeOf(err) == ErrCodeConflict
}

func IsUnauthorized(err error) bool {
	return CodeOf(err) == ErrCodeUnauthorized
}

var (
	ErrJobNotFound      = New(ErrCodeNotFound, "job not found")
	ErrProposalNotFound = New(ErrCodeNotFound, "proposal not found")
	ErrProfileNotFound  = New(ErrCodeNotFound, "profile not found")
	ErrUserNotFound     = New(ErrCodeNotFound, "user not found")
	ErrPaymentNotFound  = New(ErrCodeNotFound, "payment not found")

	ErrUnauthorized       = New(ErrCodeUnauthorized, "not authorized")
	ErrInvalidToken       = New(ErrCodeUnauthorized, "token is not valid")
	ErrInvalidCredentials = New(ErrCodeUnauthorized, "invalid credentials")
	ErrInvalidUser        = New(ErrCodeUnauthorized, "invalid user")
	ErrForbidden          = New(ErrCodeForbidden, "forbidden")
	ErrBanned             = New(ErrCodeForbidden, "account has been banned")

	ErrProfileRequired  = New(ErrCodeValidation, "you must have a freelancer profile to apply")
	ErrAlreadyApplied   = New(ErrCodeConflict, "you have already applied to this job")
	ErrProfileExists    = New(ErrCodeConflict, "profile already exists")
	ErrEmailTaken       = New(ErrCodeConflict, "user already exists")
	ErrPaymentExists    = New(ErrCodeConflict, "payment already exists for this job")
	ErrJobCancelled     = New(ErrCodeConflict, "cannot pay for a cancelled job")
	ErrConcurrentUpdate = New(ErrCodeConflict, "job was modified concurrently, reload and try again")
)
