package saferequests

import (
	"errors"
	"fmt"

	"github.com/xopy-io/saferequests/retry"
	"github.com/xopy-io/saferequests/settings"
)

// ClientError represents the error categories surfaced by the request
// layer.
type ClientError interface {
	error
	Type() ErrorType
}

// ErrorType defines the category of client error.
type ErrorType string

const (
	// TransportFailure covers transport errors that were not retried
	// or exhausted the retry budget.
	TransportFailure ErrorType = "transport"
	// InvalidParameterFormat covers query parameters supplied in an
	// unsupported shape; never retried.
	InvalidParameterFormat ErrorType = "params"
	// RequestError covers calls that could not produce a request:
	// empty URL, unmarshalable JSON body, malformed target.
	RequestError ErrorType = "request"
)

// TransportError is the terminal failure of an attempt loop whose last
// transport call failed.
type TransportError struct {
	// Kind is the classified category of the underlying error.
	Kind retry.ErrorKind
	// Method and URL identify the failed call.
	Method string
	URL    string
	// Attempts is the number of transport calls made before giving up.
	Attempts int
	// Err is the last transport error, unmasked.
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failure (%s): %s %s after %d attempt(s): %v",
		e.Kind, e.Method, e.URL, e.Attempts, e.Err)
}

func (e *TransportError) Type() ErrorType { return TransportFailure }

func (e *TransportError) Unwrap() error { return e.Err }

// paramError adapts a settings.ErrInvalidParams failure to ClientError.
type paramError struct {
	wrapped error
}

func (e *paramError) Error() string { return e.wrapped.Error() }

func (e *paramError) Type() ErrorType { return InvalidParameterFormat }

func (e *paramError) Unwrap() error { return e.wrapped }

// requestError covers request construction failures.
type requestError struct {
	message string
	wrapped error
}

func (e *requestError) Error() string {
	if e.wrapped != nil {
		return fmt.Sprintf("request error: %s: %v", e.message, e.wrapped)
	}
	return fmt.Sprintf("request error: %s", e.message)
}

func (e *requestError) Type() ErrorType { return RequestError }

func (e *requestError) Unwrap() error { return e.wrapped }

func newRequestError(message string, wrapped error) ClientError {
	return &requestError{message: message, wrapped: wrapped}
}

// wrapSettingsErr lifts settings errors into the ClientError taxonomy.
func wrapSettingsErr(err error) error {
	if errors.Is(err, settings.ErrInvalidParams) {
		return &paramError{wrapped: err}
	}
	return err
}

// IsErrorType checks if an error is of a specific type.
func IsErrorType(err error, errorType ErrorType) bool {
	if err == nil {
		return false
	}
	var clientErr ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type() == errorType
	}
	return false
}
