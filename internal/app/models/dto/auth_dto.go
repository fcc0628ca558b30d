package dto

// RegisterRequest represents the payload for account registration
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email" example:"student@example.edu"`
	Password string `json:"password" binding:"required,min=8" example:"Password123!"`
}

// LoginRequest represents the payload for logging in
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"student@example.edu"`
	Password string `json:"password" binding:"required" example:"Password123!"`
}

// RefreshTokenRequest represents the payload for refreshing an access token
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required" example:"8f14e45f-ceea-467f-a8fb-9acdbefad2c1"`
}

// TokenResponse represents the token pair returned on login and refresh
type TokenResponse struct {
	AccessToken  string `json:"accessToken" example:"eyJhbGciOiJIUzI1NiIs..."`
	RefreshToken string `json:"refreshToken" example:"8f14e45f-ceea-467f-a8fb-9acdbefad2c1"`
	ExpiresIn    int64  `json:"expiresIn" example:"3600"`
}

// UserResponse represents public account information
type UserResponse struct {
	ID    int64  `json:"id" example:"42"`
	Email string `json:"email" example:"student@example.edu"`
}
