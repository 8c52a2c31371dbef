package models

import "errors"

// Error constants for account operations
var (
	ErrUserNotFound          = errors.New("user not found")
	ErrEmailTaken            = errors.New("an account with this email already exists")
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrSessionRevoked        = errors.New("session has been revoked")
	ErrInvalidToken          = errors.New("invalid or expired token")
	ErrProviderNotConfigured = errors.New("sign-in provider is not configured")
	ErrInvalidOAuthState     = errors.New("invalid or expired oauth state")
	ErrProviderEmailMissing  = errors.New("provider did not return an email address")
	ErrPasswordTooLong       = errors.New("password exceeds the maximum length")
)

// Error constants for profile operations
var (
	ErrProfileNotFound = errors.New("profile not found")
)
