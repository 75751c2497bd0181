// Package http provides custom HTTP transport utilities,
// including request/response logging, session token injection
// and User-Agent and default header injection.
// The decorators wrap an http.RoundTripper and are composed by the request dispatcher.
package http
