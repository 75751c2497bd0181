// Package request implements the request dispatcher every API call goes through.
//
// The dispatcher resolves paths against the configured base endpoint, keeps at most one
// request in flight per path and method (a newer request cancels the older one),
// attaches the session token, and decodes the {code, message, data} envelope the backend
// wraps every response in. Application failures are reported to the user through an
// injected Notifier, and the codes that mean the session is gone start the forced-logout
// flow through an injected SessionHandler.
package request
