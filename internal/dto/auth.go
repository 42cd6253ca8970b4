package dto

import "time"

// LoginRequest defines the login payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse returns the issued access token alongside the account view.
// The refresh token travels in an HTTP-only cookie, not in the body.
type LoginResponse struct {
	AccessToken string          `json:"accessToken"`
	ExpiresAt   time.Time       `json:"expiresAt"`
	Account     AccountResponse `json:"account"`
}

// RefreshRequest identifies the account asking for a token rotation.
type RefreshRequest struct {
	AccountID string `json:"accountID" binding:"required"`
}
