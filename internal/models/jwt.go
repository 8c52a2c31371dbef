package models

import "github.com/golang-jwt/jwt/v5"

// SessionClaims are the claims carried by a session token. The JWT ID keys
// the session record in Redis so a token can be revoked before it expires.
type SessionClaims struct {
	Email    string `json:"email"`
	Provider string `json:"provider,omitempty"`
	jwt.RegisteredClaims
}

// SessionResponse is returned by every successful sign-in or sign-up
type SessionResponse struct {
	Token     string `json:"token"`
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	ExpiresAt string `json:"expires_at"`
}
