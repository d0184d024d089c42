package api

import (
	"errors"
	"fmt"
)

// Error represents an HTTP-level failure: the server answered outside 2xx.
// The body text is kept verbatim for diagnostics.
type Error struct {
	StatusCode int
	Body       string
}

func (e *Error) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
}

// AppError represents a logical failure: the server answered 2xx but the
// envelope carried the failure sentinel. Message is the server's own text
// and is safe to show to the user.
type AppError struct {
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

// ValidationError is a caller error: a required parameter was missing or
// malformed. It is raised before any network call.
type ValidationError struct {
	Param  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: %s", e.Param, e.Reason)
	}
	return fmt.Sprintf("%s is required", e.Param)
}

func missing(param string) error {
	return &ValidationError{Param: param}
}

// IsValidation reports whether err is a pre-flight parameter error.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsApp reports whether err carries a server-provided failure message.
func IsApp(err error) bool {
	var ae *AppError
	return errors.As(err, &ae)
}
