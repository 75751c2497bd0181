package http

import "time"

const (
	// DefaultTimeout is the default overall timeout for HTTP requests.
	DefaultTimeout = 5 * time.Second

	// DefaultProduct is the product token of the User-Agent header.
	DefaultProduct = "admin-client"

	// redactedValue replaces sensitive header values in debug dumps.
	redactedValue = "[redacted]"
)
