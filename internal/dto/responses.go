package dto

import (
	"github.com/mixaura/agency-backend/internal/models"
	"github.com/mixaura/agency-backend/internal/service"
)

// AuthResponse represents the result of registration or login
type AuthResponse struct {
	User         *models.User `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int64        `json:"expires_in"`
}

// NewAuthResponse creates an AuthResponse from the service result
func NewAuthResponse(result *service.AuthResult) *AuthResponse {
	return &AuthResponse{
		User:         result.User,
		AccessToken:  result.TokenPair.AccessToken,
		RefreshToken: result.TokenPair.RefreshToken,
		ExpiresIn:    int64(result.TokenPair.ExpiresIn.Seconds()),
	}
}

// TokenResponse represents a refreshed token pair
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// NewTokenResponse creates a TokenResponse from a token pair
func NewTokenResponse(pair *service.TokenPair) *TokenResponse {
	return &TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    int64(pair.ExpiresIn.Seconds()),
	}
}

// AdminStatusResponse represents the tri-state admin check result
type AdminStatusResponse struct {
	Status service.AdminStatus `json:"status"`
}

// PortfolioListResponse represents the public showcase
type PortfolioListResponse struct {
	Items []models.PortfolioItem `json:"items"`
}
