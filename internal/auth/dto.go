package auth

// LoginRequest carries the credentials submitted to the login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is returned after a successful credential check.
type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}
