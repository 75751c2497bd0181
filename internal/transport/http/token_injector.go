package http

//go:generate $MOCKGEN -source=token_injector.go -destination=mocks/token_injector_mock.go

import "net/http"

// TokenSource supplies the current session token.
// An empty token means there is no session.
type TokenSource interface {
	// Token returns the current session token.
	Token() string
}

// TokenInjector is a custom http.RoundTripper that attaches the session token header.
// The token is read at send time so a login or reset is visible to the very next request.
type TokenInjector struct {
	next   http.RoundTripper
	header string
	tokens TokenSource
}

// NewTokenInjector creates and returns a new instance of TokenInjector.
func NewTokenInjector(next http.RoundTripper, header string, tokens TokenSource) http.RoundTripper {
	return &TokenInjector{
		next:   next,
		header: header,
		tokens: tokens,
	}
}

// RoundTrip sets the token header when a token is present and strips it otherwise.
func (t *TokenInjector) RoundTrip(req *http.Request) (*http.Response, error) {
	token := t.tokens.Token()

	req = req.Clone(req.Context())

	if token != "" {
		req.Header.Set(t.header, token)
	} else {
		req.Header.Del(t.header)
	}

	return t.next.RoundTrip(req)
}
