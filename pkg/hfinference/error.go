package hfinference

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for responses that arrived but could not be used.
var (
	// ErrMalformedResponse is returned when a response body cannot be
	// decoded into the shape the task promises.
	ErrMalformedResponse = errors.New("hfinference: malformed response")

	// ErrEmptyResult is returned when a response decodes but carries no
	// usable value, e.g. an empty caption list.
	ErrEmptyResult = errors.New("hfinference: empty result")
)

// Error represents an Inference API error.
type Error struct {
	// HTTPStatus is the HTTP status code.
	HTTPStatus int `json:"-"`

	// Message is the error message reported by the API.
	Message string `json:"error"`

	// EstimatedTime is the number of seconds the API expects a cold model
	// to need before it can serve requests. Zero when not reported.
	EstimatedTime float64 `json:"estimated_time,omitempty"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.HTTPStatus)
	}
	return fmt.Sprintf("hfinference: %s (status=%d)", msg, e.HTTPStatus)
}

// IsRateLimit returns true if this is a rate limit error.
func (e *Error) IsRateLimit() bool {
	return e.HTTPStatus == http.StatusTooManyRequests
}

// IsUnauthorized returns true if the token was missing or rejected.
func (e *Error) IsUnauthorized() bool {
	return e.HTTPStatus == http.StatusUnauthorized || e.HTTPStatus == http.StatusForbidden
}

// IsModelLoading returns true if the model is still being loaded.
func (e *Error) IsModelLoading() bool {
	return e.HTTPStatus == http.StatusServiceUnavailable && e.EstimatedTime > 0
}

// IsServerError returns true if this is a server-side error.
func (e *Error) IsServerError() bool {
	return e.HTTPStatus >= 500
}

// Retryable returns true if the request can be retried.
func (e *Error) Retryable() bool {
	return e.IsRateLimit() || e.IsServerError()
}

// AsError extracts *Error from an error.
//
// Example:
//
//	if e, ok := hfinference.AsError(err); ok {
//	    if e.IsModelLoading() {
//	        // Retry later
//	    }
//	}
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
