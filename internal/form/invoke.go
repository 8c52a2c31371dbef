package form

import (
	"context"
	"fmt"
	"time"

	"github.com/jirani-app/app-jirani/internal/account"
	"github.com/jirani-app/app-jirani/internal/logging"
	"go.uber.org/zap"
)

// invoke runs one account call. Panics and contract violations come back as
// an *account.OperationError without a message, so callers show their fallback.
func invoke(ctx context.Context, op string, timeout time.Duration, logger *logging.SafeLogger,
	call func(context.Context) (*account.Session, error)) (session *account.Session, err error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	defer func() {
		if r := recover(); r != nil {
			logger.Error("account operation panicked",
				zap.String("operation", op),
				zap.String("panic", fmt.Sprint(r)))
			session, err = nil, &account.OperationError{Op: op}
		}
	}()

	session, err = call(ctx)
	if err == nil && session == nil {
		logger.Warn("account operation returned neither session nor error", zap.String("operation", op))
		return nil, &account.OperationError{Op: op}
	}
	return session, err
}
