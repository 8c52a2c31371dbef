package account

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Delays used by the placeholder flows of the reference screens.
const (
	StubEmailDelay    = 800 * time.Millisecond
	StubProviderDelay = 600 * time.Millisecond
)

// StubClient stands in for the backend: it waits a fixed delay and always succeeds.
type StubClient struct {
	EmailDelay    time.Duration
	ProviderDelay time.Duration
	TTL           time.Duration
}

// NewStubClient returns a stub with the reference delays.
func NewStubClient() *StubClient {
	return &StubClient{
		EmailDelay:    StubEmailDelay,
		ProviderDelay: StubProviderDelay,
		TTL:           24 * time.Hour,
	}
}

func (s *StubClient) SignIn(ctx context.Context, email, _ string) (*Session, error) {
	return s.session(ctx, s.EmailDelay, email)
}

func (s *StubClient) SignUp(ctx context.Context, email, _ string) (*Session, error) {
	return s.session(ctx, s.EmailDelay, email)
}

func (s *StubClient) SignInWithProvider(ctx context.Context, provider Provider) (*Session, error) {
	return s.session(ctx, s.ProviderDelay, string(provider)+"@stub.local")
}

func (s *StubClient) session(ctx context.Context, delay time.Duration, email string) (*Session, error) {
	if delay > 0 {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return nil, &OperationError{Op: "stub", Err: ctx.Err()}
		}
	}
	return &Session{
		Token:     "stub-" + uuid.NewString(),
		UserID:    uuid.NewString(),
		Email:     email,
		ExpiresAt: time.Now().Add(s.TTL),
	}, nil
}
