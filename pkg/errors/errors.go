// Package errors provides the coded error type shared by the CLI and the
// HTTP API.
//
// Every error that reaches a user carries a [Code]. The CLI prints
// [UserMessage]; the API answers with [HTTPStatus] and the code string.
//
// # Error Codes
//
//   - INVALID_*: bad options, malformed songs, colours or config
//   - UNSUPPORTED_*: well-formed input nothing can handle, such as a page
//     from a site without an adapter
//   - NOT_FOUND: missing files or pages
//   - NETWORK_ERROR, TIMEOUT, RATE_LIMITED: fetch failures
//   - INTERNAL_ERROR: everything else
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidSong, "section %d: pair %d has %d fields", i, j, n)
//	if errors.Is(err, errors.ErrCodeInvalidSong) {
//	    // reject the document
//	}
//
//	err = errors.Wrap(errors.ErrCodeNetwork, origErr, "fetch %s", url)
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Code is a machine-readable error code.
type Code string

const (
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidSong    Code = "INVALID_SONG"
	ErrCodeInvalidOptions Code = "INVALID_OPTIONS"
	ErrCodeInvalidFormat  Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig  Code = "INVALID_CONFIG"

	ErrCodeUnsupportedSource Code = "UNSUPPORTED_SOURCE"
	ErrCodeUnsupported       Code = "UNSUPPORTED"

	ErrCodeNotFound Code = "NOT_FOUND"

	ErrCodeNetwork     Code = "NETWORK_ERROR"
	ErrCodeTimeout     Code = "TIMEOUT"
	ErrCodeRateLimited Code = "RATE_LIMITED"

	ErrCodeInternal Code = "INTERNAL_ERROR"
)

var statusByCode = map[Code]int{
	ErrCodeInvalidInput:      http.StatusBadRequest,
	ErrCodeInvalidSong:       http.StatusBadRequest,
	ErrCodeInvalidOptions:    http.StatusBadRequest,
	ErrCodeInvalidFormat:     http.StatusBadRequest,
	ErrCodeInvalidConfig:     http.StatusBadRequest,
	ErrCodeUnsupportedSource: http.StatusUnprocessableEntity,
	ErrCodeUnsupported:       http.StatusUnprocessableEntity,
	ErrCodeNotFound:          http.StatusNotFound,
	ErrCodeNetwork:           http.StatusBadGateway,
	ErrCodeTimeout:           http.StatusGatewayTimeout,
	ErrCodeRateLimited:       http.StatusTooManyRequests,
}

// Error is a coded error with an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error

	// RetryAfter is the server's back-off hint for RATE_LIMITED errors.
	RetryAfter time.Duration
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// New returns an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an Error with a formatted message around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// RateLimited returns a RATE_LIMITED error. retryAfter may be zero when the
// server gave no hint.
func RateLimited(retryAfter time.Duration, format string, args ...any) *Error {
	e := New(ErrCodeRateLimited, format, args...)
	e.RetryAfter = retryAfter
	return e
}

// Is reports whether the outermost *Error in err's chain has code.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// GetCode returns the code of the outermost *Error in err's chain, or "".
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// RetryAfter returns the back-off hint of a rate-limit error in err's chain.
func RetryAfter(err error) (time.Duration, bool) {
	var e *Error
	for errors.As(err, &e) {
		if e.Code == ErrCodeRateLimited {
			return e.RetryAfter, true
		}
		err = e.Cause
	}
	return 0, false
}

// UserMessage returns err's message without the code prefix.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// HTTPStatus maps err to the status the API answers with. Uncoded errors
// are 500s.
func HTTPStatus(err error) int {
	if status, ok := statusByCode[GetCode(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}
