package dto

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest carries the refresh token to exchange.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// RegisterResponse confirms account creation.
type RegisterResponse struct {
	Status string `json:"status"`
	Email  string `json:"email"`
}

// LoginResponse returns the issued token pair.
type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// RefreshResponse returns a freshly issued access token.
type RefreshResponse struct {
	AccessToken string `json:"access_token"`
}

// MeResponse identifies the authenticated caller.
type MeResponse struct {
	UserID int64 `json:"user_id"`
}

// LogoutResponse confirms revocation.
type LogoutResponse struct {
	Status       string `json:"status"`
	TokenRevoked bool   `json:"token_revoked"`
}
