package hooksched

import (
	"errors"
	"fmt"
)

// Stable error codes returned by the hookSCHED API, plus the code used for
// client-side validation failures. Every error produced by this library
// carries exactly one of these.
const (
	ErrCodeUnauthorized        = "UNAUTHORIZED"
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeBadRequest          = "BAD_REQUEST"
	ErrCodeValidation          = "VALIDATION_ERROR"
	ErrCodeInternalServerError = "INTERNAL_SERVER_ERROR"
)

// Error is the single error type surfaced by the client. Code is one of the
// ErrCode constants, StatusCode is the associated HTTP status (400 for
// client-side validation failures, which never reach the network), and
// Details carries whatever structured context the server attached.
type Error struct {
	Code       string `json:"code"`
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
	Details    any    `json:"details,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("hooksched: %s (%s)", e.Message, e.Code)
}

// newValidationError builds a client-side validation failure. These are
// raised before any request is sent.
func newValidationError(format string, args ...any) *Error {
	return &Error{
		Code:       ErrCodeValidation,
		StatusCode: 400,
		Message:    fmt.Sprintf(format, args...),
	}
}

// IsValidation reports whether err is a validation failure, whether raised
// client-side or returned by the server with code VALIDATION_ERROR.
func IsValidation(err error) bool { return hasCode(err, ErrCodeValidation) }

// IsUnauthorized reports whether err is an authentication failure.
func IsUnauthorized(err error) bool { return hasCode(err, ErrCodeUnauthorized) }

// IsNotFound reports whether err means the requested resource does not exist.
func IsNotFound(err error) bool { return hasCode(err, ErrCodeNotFound) }

// IsBadRequest reports whether err is a generic 400 rejection.
func IsBadRequest(err error) bool { return hasCode(err, ErrCodeBadRequest) }

// IsInternal reports whether err is a server-side failure, an unmapped
// status, or an undecodable response.
func IsInternal(err error) bool { return hasCode(err, ErrCodeInternalServerError) }

func hasCode(err error, code string) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Code == code
}
