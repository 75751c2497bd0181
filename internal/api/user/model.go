package user

// Credentials is the body of a login request.
// The validate tags are checked by callers that collect credentials from a user.
type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResult is the payload of a successful login.
type LoginResult struct {
	Token string `json:"token"`
}

// Info is the profile of the logged-in user.
type Info struct {
	Roles        []string `json:"roles"`
	Introduction string   `json:"introduction"`
	Avatar       string   `json:"avatar"`
	Name         string   `json:"name"`
}

// infoRequest is the body of a profile request.
type infoRequest struct {
	Token string `json:"token"`
}
