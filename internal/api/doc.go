// Package api provides HTTP client functionality for communicating with the
// disposable mailbox API. Every operation is a GET against a single base URL
// with the operation name in the "action" query parameter.
//
// # Client Creation
//
// [NewClient] takes a [Config]. Only BaseURL is required; requests time out
// after [DefaultTimeout] unless a custom HTTP client or timeout is given.
//
// # Error Handling
//
// Failures are reported with the types from internal/apierrors:
//
//   - NetworkError: the request could not be sent or the body could not be read.
//   - APIError: the service answered with a non-2xx status.
//   - DecodeError: the body is not valid JSON or does not fit the expected shape.
//   - ResponseError: the body is valid JSON but lacks an expected field.
//   - NotFoundError: readMessage does not know the requested id.
//
// No request is ever retried.
//
// # Timestamps
//
// Date fields use the layout "YYYY-MM-DD HH:MM:SS" with no zone. [Timestamp]
// decodes them into a time.Time without any zone conversion.
package api
