package github

import (
	"errors"
	"fmt"
)

// APIError is the single error kind produced by the upstream query layer.
// StatusCode is an HTTP-style status: 404 for absent entities (raised by
// callers, not this layer), the upstream status for non-2xx responses, and
// 500 for transport or decoding failures.
type APIError struct {
	Message    string
	StatusCode int
	Err        error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// NewAPIError creates an APIError wrapping an underlying cause.
func NewAPIError(message string, statusCode int, err error) *APIError {
	return &APIError{Message: message, StatusCode: statusCode, Err: err}
}

// NotFoundError creates a 404 APIError for an absent root entity.
func NotFoundError(message string) *APIError {
	return &APIError{Message: message, StatusCode: 404}
}

// AsAPIError extracts an *APIError from an error chain, if present.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
