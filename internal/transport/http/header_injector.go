package http

import "net/http"

// HeaderInjector is a custom http.RoundTripper that adds default headers
// the request does not set on its own.
type HeaderInjector struct {
	next    http.RoundTripper
	headers http.Header
}

// NewHeaderInjector creates and returns a new instance of HeaderInjector.
func NewHeaderInjector(next http.RoundTripper, headers http.Header) http.RoundTripper {
	return &HeaderInjector{
		next:    next,
		headers: headers.Clone(),
	}
}

// RoundTrip executes a single HTTP transaction after filling in missing default headers.
func (t *HeaderInjector) RoundTrip(req *http.Request) (*http.Response, error) {
	var cloned bool

	for name, values := range t.headers {
		if req.Header.Get(name) != "" || len(values) == 0 {
			continue
		}

		if !cloned {
			req = req.Clone(req.Context())
			cloned = true
		}

		req.Header[http.CanonicalHeaderKey(name)] = append([]string(nil), values...)
	}

	return t.next.RoundTrip(req)
}
