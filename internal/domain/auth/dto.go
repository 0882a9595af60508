package auth

// LoginRequest for POST /auth/login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest for POST /auth/refresh and /auth/logout
type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

// TokenPair is returned after successful login
type TokenPair struct {
	RefreshToken string `json:"refresh_token"`
	AccessToken  string `json:"access_token"`
}

// AccessTokenResponse is returned after refresh
type AccessTokenResponse struct {
	AccessToken string `json:"access_token"`
}
