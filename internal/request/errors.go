package request

import "errors"

// fallbackMessage is reported when a failed envelope has no message.
const fallbackMessage = "Error"

// Static error definitions for better error handling.
var (
	// ErrSuperseded is the cancellation cause of a request replaced by a newer one
	// to the same path and method.
	ErrSuperseded = errors.New("request canceled: superseded by a newer request")
	// ErrDispatcherClosed is the cancellation cause of requests still in flight on Close.
	ErrDispatcherClosed = errors.New("request canceled: dispatcher closed")
	// ErrUnexpectedHTTPStatus indicates a non-2xx HTTP status code was received.
	ErrUnexpectedHTTPStatus = errors.New("unexpected HTTP status")
	// ErrInvalidEnvelope indicates that the response body is not an envelope.
	ErrInvalidEnvelope = errors.New("invalid response envelope")
	// ErrAPI matches every application-level failure reported through an envelope.
	ErrAPI = errors.New("api error")
)

// APIError is an application-level failure: the envelope code is not CodeSuccess.
// Its message is the envelope message, or a generic fallback.
type APIError struct {
	Code    int
	Message string

	// cause is set when the body could not be read as an envelope.
	cause error
}

// Error returns the envelope message.
func (e *APIError) Error() string {
	return e.Message
}

// Is makes errors.Is(err, ErrAPI) match any APIError.
func (e *APIError) Is(target error) bool {
	return target == ErrAPI //nolint:errorlint // Sentinel identity check.
}

// Unwrap returns the decoding failure behind the error, if any.
func (e *APIError) Unwrap() error {
	return e.cause
}

// IsForcedLogout reports whether the error means the session is gone.
func (e *APIError) IsForcedLogout() bool {
	return IsForcedLogoutCode(e.Code)
}
