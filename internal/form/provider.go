package form

import (
	"context"
	"sync"
	"time"

	"github.com/jirani-app/app-jirani/internal/account"
	"github.com/jirani-app/app-jirani/internal/logging"
	"github.com/jirani-app/app-jirani/internal/navigation"
	"github.com/jirani-app/app-jirani/internal/observability"
	"go.uber.org/zap"
)

// ProviderFallback is shown when a provider sign-in fails without a message.
const ProviderFallback = "Try again."

// ProviderButton is a "Continue with Google/Facebook" button. It follows the
// same busy/idle contract as Form, without local validation.
type ProviderButton struct {
	mu     sync.Mutex
	busy   bool
	notice *Notice

	provider account.Provider
	verb     string
	client   account.Client
	router   navigation.Router
	next     navigation.Route
	timeout  time.Duration
	logger   *logging.SafeLogger
}

// NewProviderButton builds a button; verb is "sign-in" or "sign-up" and only
// changes the failure title.
func NewProviderButton(client account.Client, provider account.Provider, verb string, router navigation.Router) *ProviderButton {
	return &ProviderButton{
		provider: provider,
		verb:     verb,
		client:   client,
		router:   router,
		next:     navigation.Home,
		logger:   logging.Logger.With(zap.String("provider", string(provider))),
	}
}

// SetTimeout bounds the provider call.
func (b *ProviderButton) SetTimeout(d time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.timeout = d
}

func (b *ProviderButton) Provider() account.Provider { return b.provider }

// Label is the button text.
func (b *ProviderButton) Label() string {
	return "Continue with " + b.provider.DisplayName()
}

// Busy reports whether the spinner is shown and the button disabled.
func (b *ProviderButton) Busy() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.busy
}

func (b *ProviderButton) Notice() *Notice {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.notice == nil {
		return nil
	}
	n := *b.notice
	return &n
}

// Press starts the provider flow unless one is already running.
func (b *ProviderButton) Press(ctx context.Context) Outcome {
	b.mu.Lock()
	if b.busy {
		b.mu.Unlock()
		return OutcomeIgnored
	}
	b.busy = true
	b.notice = nil
	timeout := b.timeout
	b.mu.Unlock()

	op := string(b.provider) + "_" + b.verb
	_, err := invoke(ctx, op, timeout, b.logger, func(ctx context.Context) (*account.Session, error) {
		return b.client.SignInWithProvider(ctx, b.provider)
	})

	b.mu.Lock()
	b.busy = false
	if err != nil {
		b.notice = &Notice{
			Title:   b.provider.DisplayName() + " " + b.verb + " failed",
			Message: account.Message(err, ProviderFallback),
		}
	}
	b.mu.Unlock()

	if err != nil {
		observability.ProviderSignIns.WithLabelValues(string(b.provider), "failed").Inc()
		b.logger.Info("provider sign-in failed", zap.Error(err))
		return OutcomeFailed
	}

	observability.ProviderSignIns.WithLabelValues(string(b.provider), "success").Inc()
	if b.router != nil {
		b.router.Replace(b.next)
	}
	return OutcomeSucceeded
}
