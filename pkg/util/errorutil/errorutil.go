package errorutil

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// DomainError standardizes application errors at the HTTP boundary.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

// AuthenticationError covers bad credentials, broken tokens, inactive accounts and missing roles.
type AuthenticationError struct {
	Message string
	Status  int
}

func (e *AuthenticationError) Error() string {
	return e.Message
}

// NewAuthenticationError builds an AuthenticationError; a zero status defaults to 401.
func NewAuthenticationError(message string, status int) error {
	if status == 0 {
		status = http.StatusUnauthorized
	}
	return &AuthenticationError{Message: message, Status: status}
}

// DatabaseError wraps a failed store operation. The transaction has already been rolled back.
type DatabaseError struct {
	Message string
	Err     error
}

func (e *DatabaseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DatabaseError) Unwrap() error {
	return e.Err
}

// NewDatabaseError wraps err with a human readable message.
func NewDatabaseError(message string, err error) error {
	return &DatabaseError{Message: message, Err: err}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusBadRequest, details)
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

func NewUnauthorized(message string) error {
	return NewAuthenticationError(message, http.StatusUnauthorized)
}

func NewForbidden(message string) error {
	return NewAuthenticationError(message, http.StatusForbidden)
}

func NewTooManyRequests(message string) error {
	return NewDomainError("RATE_LIMITED", message, http.StatusTooManyRequests, nil)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts any error into a DomainError ready to be rendered.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}

	var authErr *AuthenticationError
	if errors.As(err, &authErr) {
		code := "UNAUTHORIZED"
		if authErr.Status == http.StatusForbidden {
			code = "FORBIDDEN"
		} else if authErr.Status == http.StatusBadRequest {
			code = "BAD_REQUEST"
		} else if authErr.Status == http.StatusNotFound {
			code = "NOT_FOUND"
		}
		return &DomainError{Code: code, Message: authErr.Message, HTTPStatus: authErr.Status, Err: err}
	}

	var dbErr *DatabaseError
	if errors.As(err, &dbErr) {
		return &DomainError{
			Code:       "DATABASE_ERROR",
			Message:    dbErr.Message,
			HTTPStatus: http.StatusInternalServerError,
			Err:        dbErr.Err,
		}
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return &DomainError{
			Code:       http.StatusText(fiberErr.Code),
			Message:    fiberErr.Message,
			HTTPStatus: fiberErr.Code,
		}
	}

	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}
