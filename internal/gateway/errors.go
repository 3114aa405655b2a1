package gateway

import (
	"context"
	"errors"
	"fmt"

	"github.com/aliskhannn/market-notifier/internal/message"
)

// Error codes stored on failed delivery records.
const (
	CodeInvalidDestination = "INVALID_DESTINATION"
	CodeRateLimited        = "RATE_LIMITED"
	CodeTimeout            = "TIMEOUT"
	CodeTransient          = "TRANSIENT"
	CodeProviderError      = "PROVIDER_ERROR"
	CodeBuildFailed        = "BUILD_FAILED"
	CodeUnknown            = "UNKNOWN"
)

// Error is a classified send failure.
//
// Retryable is informational: the job runner applies the same bounded retry
// policy to every failure.
type Error struct {
	Code      string
	Retryable bool
	Err       error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Code, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// InvalidDestination wraps err as a non-retryable destination failure.
func InvalidDestination(err error) error {
	return &Error{Code: CodeInvalidDestination, Err: err}
}

// RateLimited wraps err as a provider throttling failure.
func RateLimited(err error) error {
	return &Error{Code: CodeRateLimited, Retryable: true, Err: err}
}

// Transient wraps err as a retryable network or provider failure.
func Transient(err error) error {
	return &Error{Code: CodeTransient, Retryable: true, Err: err}
}

// Provider wraps err as an unclassified provider failure.
func Provider(err error) error {
	return &Error{Code: CodeProviderError, Retryable: true, Err: err}
}

// CodeOf maps any error to the code recorded on a failed delivery.
func CodeOf(err error) string {
	if err == nil {
		return ""
	}

	var gwErr *Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return CodeTimeout
	case errors.As(err, &gwErr):
		return gwErr.Code
	case errors.Is(err, message.ErrMalformedInput):
		return CodeBuildFailed
	}

	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return CodeTimeout
	}

	return CodeUnknown
}

// IsRetryable reports whether err is worth retrying in spirit.
func IsRetryable(err error) bool {
	var gwErr *Error
	if errors.As(err, &gwErr) {
		return gwErr.Retryable
	}
	return !errors.Is(err, message.ErrMalformedInput)
}
