package dto

// RegisterRequest represents the request to register a user
type RegisterRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest represents the request to sign in
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest represents the request to refresh a token pair
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutRequest represents the request to terminate a session
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// GeneratePortfolioRequest represents the request to generate portfolio items
type GeneratePortfolioRequest struct {
	Industry          string `json:"industry" binding:"required"`
	MarketingStrategy string `json:"marketingStrategy" binding:"required"`
}
