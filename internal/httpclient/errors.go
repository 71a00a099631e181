package httpclient

import (
	"errors"
	"fmt"
)

// ErrorType is the classified outcome taxonomy every fetch, adapter call,
// and persistence write collapses into. Callers never see a raw error —
// only one of these.
type ErrorType string

const (
	ErrHTTP404          ErrorType = "HTTP_404"
	ErrTimeout          ErrorType = "TIMEOUT"
	ErrConnection       ErrorType = "CONNECTION_ERROR"
	ErrJSON             ErrorType = "JSON_ERROR"
	ErrNoData           ErrorType = "NO_DATA"
	ErrDatabaseSaveFail ErrorType = "DATABASE_SAVE_FAILED"
	ErrUnknown          ErrorType = "UNKNOWN"
)

// TypedError is the error currency threaded from the Fetcher through the
// Adapters and Orchestrator into the Failure Tracker.
type TypedError struct {
	Type    ErrorType
	URL     string
	Message string
	cause   error
}

func (e *TypedError) Error() string {
	if e.URL != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.URL)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *TypedError) Unwrap() error { return e.cause }

// NewTypedError builds a TypedError, truncating the message to the 200
// character ledger limit (§3 Failure Record).
func NewTypedError(t ErrorType, url string, cause error) *TypedError {
	msg := ""
	if cause != nil {
		msg = cause.Error()
	}
	if len(msg) > 200 {
		msg = msg[:200]
	}
	return &TypedError{Type: t, URL: url, Message: msg, cause: cause}
}

// AsTypedError unwraps err into a *TypedError if it is (or wraps) one.
func AsTypedError(err error) (*TypedError, bool) {
	var te *TypedError
	ok := errors.As(err, &te)
	return te, ok
}
