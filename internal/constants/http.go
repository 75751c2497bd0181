// Package constants holds values shared between packages that would otherwise import each other.
package constants

const (
	// ContentTypeHeader is the HTTP header carrying the media type of a body.
	ContentTypeHeader = "Content-Type"

	// JSONContentType is sent with every request body.
	JSONContentType = "application/json;charset=UTF-8"

	// RequestIDHeader carries the identifier of a pending request.
	RequestIDHeader = "X-Request-ID"

	// DefaultTokenHeader is the header the session token is sent in.
	DefaultTokenHeader = "X-Token"
)
