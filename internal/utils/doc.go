// Package utils provides small helpers shared by the transport, request and UI layers,
// such as content type detection, log truncation and User-Agent providers.
package utils
