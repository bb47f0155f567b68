// Package apierrors provides shared error types for the tempmail client.
package apierrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrInvalidFormat is returned when a candidate address does not match the email syntax.
	ErrInvalidFormat = errors.New("not an email address")

	// ErrInvalidAddress is returned when an address is well-formed but not usable
	// with the service (banned local part or unsupported domain).
	ErrInvalidAddress = errors.New("not a valid email address")

	// ErrMessageNotFound is returned when the service has no message with the requested id.
	ErrMessageNotFound = errors.New("message not found")

	// ErrMalformedTimestamp is returned when a date field does not match "YYYY-MM-DD HH:MM:SS".
	ErrMalformedTimestamp = errors.New("malformed timestamp")

	// ErrAddressNotSet is returned when an operation needs a bound address and none is set.
	ErrAddressNotSet = errors.New("no email address bound to client")
)

// APIError represents a non-2xx HTTP response from the service.
type APIError struct {
	StatusCode int
	Action     string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("API error %d on %s: %s", e.StatusCode, e.Action, e.Message)
	}
	return fmt.Sprintf("API error %d on %s", e.StatusCode, e.Action)
}

// Is implements errors.Is for sentinel error matching.
// A 404 from readMessage means the id is unknown.
func (e *APIError) Is(target error) bool {
	return e.StatusCode == 404 && e.Action == "readMessage" && target == ErrMessageNotFound
}

// NetworkError represents a network-level failure, including a failed
// read of the response body.
type NetworkError struct {
	Err    error
	Action string
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// DecodeError indicates a response body that is not valid JSON or does not
// fit the expected shape.
type DecodeError struct {
	Action string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s response: %v", e.Action, e.Err)
}

// Unwrap returns the underlying error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ResponseError indicates well-formed JSON that lacks an expected field.
type ResponseError struct {
	Action  string
	Message string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("unexpected %s response: %s", e.Action, e.Message)
}

// NotFoundError identifies the message id the service could not find.
type NotFoundError struct {
	ID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("message %d not found", e.ID)
}

// Is implements errors.Is for sentinel error matching.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrMessageNotFound
}
