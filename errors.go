package tempmail

import (
	"github.com/tempmail/client-go/internal/apierrors"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrInvalidFormat is returned when a candidate does not look like an email address.
	ErrInvalidFormat = apierrors.ErrInvalidFormat

	// ErrInvalidAddress is returned when the local part is banned or the
	// domain is not offered by the service.
	ErrInvalidAddress = apierrors.ErrInvalidAddress

	// ErrMessageNotFound is returned when the service does not know a message id.
	ErrMessageNotFound = apierrors.ErrMessageNotFound

	// ErrMalformedTimestamp is returned when a date is not "YYYY-MM-DD HH:MM:SS".
	ErrMalformedTimestamp = apierrors.ErrMalformedTimestamp

	// ErrAddressNotSet is returned by inbox operations on a client without an address.
	ErrAddressNotSet = apierrors.ErrAddressNotSet
)

// APIError represents a non-2xx HTTP response from the service.
type APIError = apierrors.APIError

// NetworkError represents a transport failure or a failed read of a response body.
type NetworkError = apierrors.NetworkError

// DecodeError represents a response body that is not valid JSON or has the wrong shape.
type DecodeError = apierrors.DecodeError

// ResponseError represents well-formed JSON that lacks an expected field.
type ResponseError = apierrors.ResponseError

// NotFoundError carries the id of a message the service does not know.
// It matches ErrMessageNotFound.
type NotFoundError = apierrors.NotFoundError

// ValidationError describes why a candidate address was rejected.
// It matches ErrInvalidFormat or ErrInvalidAddress through errors.Is.
type ValidationError struct {
	Address string
	Reason  string
	Kind    error
}

func (e *ValidationError) Error() string {
	return e.Kind.Error() + ": " + e.Address + " (" + e.Reason + ")"
}

// Unwrap returns the error kind.
func (e *ValidationError) Unwrap() error {
	return e.Kind
}
