package request

import (
	"encoding/json"
	"fmt"
)

// Sentinel codes agreed with the backend.
const (
	// CodeSuccess marks a successful envelope.
	CodeSuccess = 20000
	// CodeIllegalToken is returned for a token the backend does not recognize.
	CodeIllegalToken = 50008
	// CodeOtherClientLoggedIn is returned when another client logged in with the same account.
	CodeOtherClientLoggedIn = 50012
	// CodeTokenExpired is returned for an expired token.
	CodeTokenExpired = 50014
)

// Envelope is the JSON body convention of every backend response.
type Envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// IsSuccess reports whether the envelope carries the success code.
func (e *Envelope) IsSuccess() bool {
	return e.Code == CodeSuccess
}

// IsForcedLogoutCode reports whether code means the session is no longer valid.
func IsForcedLogoutCode(code int) bool {
	switch code {
	case CodeIllegalToken, CodeOtherClientLoggedIn, CodeTokenExpired:
		return true
	default:
		return false
	}
}

// Decode unmarshals the envelope payload into a new T.
func Decode[T any](env *Envelope) (*T, error) {
	if env == nil {
		return nil, ErrInvalidEnvelope
	}

	var result T

	if len(env.Data) == 0 || string(env.Data) == "null" {
		return &result, nil
	}

	if err := json.Unmarshal(env.Data, &result); err != nil {
		return nil, fmt.Errorf("failed to decode envelope data: %w", err)
	}

	return &result, nil
}
