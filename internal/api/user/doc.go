// Package user wraps the user endpoints of the admin backend: login, profile lookup and logout.
// Every call goes through request.Dispatcher, so failures are already shown to the user
// by the time they are returned.
package user
