package auth

import (
	"github.com/wishlane/wishlane-backend/internal/users"
)

// RegisterRequest captures the payload for creating a new account.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest captures the user credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// MagicLinkRequest asks for a sign-in link to be mailed.
type MagicLinkRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// MagicLinkVerifyRequest exchanges an emailed token for a session.
type MagicLinkVerifyRequest struct {
	Token string `json:"token" validate:"required"`
}

// RefreshRequest rotates a refresh token. AccessToken may be expired; it
// is only parsed for its session id and identity claims.
type RefreshRequest struct {
	AccessToken  string `json:"access_token" validate:"required"`
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// TokenResponse contains the session tokens and user produced by a
// successful register, login, verify, or refresh.
type TokenResponse struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	User         *users.UserDTO `json:"user"`
}

// MagicLinkResponse acknowledges a magic-link request without revealing
// whether the account exists.
type MagicLinkResponse struct {
	Sent bool `json:"sent"`
}
