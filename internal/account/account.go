// Package account defines the account operation collaborator used by the
// sign-in and sign-up screens, and the clients that implement it.
package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Provider identifies a social sign-in provider.
type Provider string

const (
	ProviderGoogle   Provider = "google"
	ProviderFacebook Provider = "facebook"
)

// DisplayName is the provider name as shown on buttons and notices.
func (p Provider) DisplayName() string {
	switch p {
	case ProviderGoogle:
		return "Google"
	case ProviderFacebook:
		return "Facebook"
	}
	return string(p)
}

// ErrUnknownProvider is returned for provider names other than google and facebook.
var ErrUnknownProvider = errors.New("unknown sign-in provider")

// ParseProvider maps a route or request value to a Provider.
func ParseProvider(s string) (Provider, error) {
	switch Provider(strings.ToLower(strings.TrimSpace(s))) {
	case ProviderGoogle:
		return ProviderGoogle, nil
	case ProviderFacebook:
		return ProviderFacebook, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownProvider, s)
}

// Session is the success payload of every account operation.
type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Client performs remote account operations. Every method either returns a
// session or an error whose Message is suitable for the user.
type Client interface {
	SignIn(ctx context.Context, email, password string) (*Session, error)
	SignUp(ctx context.Context, email, password string) (*Session, error)
	SignInWithProvider(ctx context.Context, provider Provider) (*Session, error)
}

// FallbackMessage is shown when an operation fails without a usable message.
const FallbackMessage = "Please try again."

// OperationError is a failure reported by the account collaborator.
type OperationError struct {
	Op      string
	Message string
	// Status is the HTTP status when the failure came from the API.
	Status int
	Err    error
	// internal marks Err as unfit for users, so Message falls back.
	internal bool
}

func (e *OperationError) Error() string {
	if e.Op == "" {
		return e.message()
	}
	return e.Op + ": " + e.message()
}

func (e *OperationError) Unwrap() error { return e.Err }

func (e *OperationError) message() string {
	if strings.TrimSpace(e.Message) != "" {
		return e.Message
	}
	if e.Err != nil && e.Err.Error() != "" {
		return e.Err.Error()
	}
	return FallbackMessage
}

// Message returns the user-facing text for err, or fallback when err carries none.
func Message(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var opErr *OperationError
	if errors.As(err, &opErr) {
		if strings.TrimSpace(opErr.Message) != "" {
			return opErr.Message
		}
		if opErr.internal {
			return fallback
		}
		if opErr.Err != nil && strings.TrimSpace(opErr.Err.Error()) != "" {
			return opErr.Err.Error()
		}
		return fallback
	}
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return fallback
}
