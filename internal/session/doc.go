// Package session keeps the session token of the running client.
// The Store hands the token to outgoing requests and forgets it when the backend
// reports that the session is no longer valid.
package session
