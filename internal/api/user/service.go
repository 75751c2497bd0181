package user

//go:generate $MOCKGEN -source=service.go -destination=mocks/service_mock.go

import (
	"context"

	"github.com/oshokin/admin-client/internal/request"
)

// Endpoints of the user API, relative to the configured base URL.
const (
	LoginPath  = "/user/login"
	InfoPath   = "/user/info"
	LogoutPath = "/user/logout"
)

// Service is the user API of the admin backend.
type Service interface {
	// Login exchanges credentials for a session token.
	Login(ctx context.Context, credentials Credentials) (*request.Envelope, error)
	// GetInfo fetches the profile that belongs to token.
	GetInfo(ctx context.Context, token string) (*request.Envelope, error)
	// Logout ends the current session.
	Logout(ctx context.Context) (*request.Envelope, error)
}

// ServiceImpl implements Service on top of a request.Dispatcher.
type ServiceImpl struct {
	dispatcher request.Dispatcher
}

// NewService creates and returns a new instance of ServiceImpl.
func NewService(dispatcher request.Dispatcher) *ServiceImpl {
	return &ServiceImpl{
		dispatcher: dispatcher,
	}
}

// Login posts credentials to the login endpoint as they are.
// Rejecting bad credentials is left to the backend.
func (s *ServiceImpl) Login(ctx context.Context, credentials Credentials) (*request.Envelope, error) {
	return s.dispatcher.Post(ctx, LoginPath, credentials)
}

// GetInfo posts token to the profile endpoint.
func (s *ServiceImpl) GetInfo(ctx context.Context, token string) (*request.Envelope, error) {
	return s.dispatcher.Post(ctx, InfoPath, infoRequest{Token: token})
}

// Logout posts an empty request to the logout endpoint.
func (s *ServiceImpl) Logout(ctx context.Context) (*request.Envelope, error) {
	return s.dispatcher.Post(ctx, LogoutPath, nil)
}

// DecodeLoginResult extracts the session token from a login response.
func DecodeLoginResult(env *request.Envelope) (*LoginResult, error) {
	return request.Decode[LoginResult](env)
}

// DecodeInfo extracts the user profile from an info response.
func DecodeInfo(env *request.Envelope) (*Info, error) {
	return request.Decode[Info](env)
}
