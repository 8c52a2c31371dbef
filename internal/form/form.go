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

// Operation is the remote account action a form submits.
type Operation func(ctx context.Context, email, password string) (*account.Session, error)

// Copy is the per-form wording of notices.
type Copy struct {
	// Name labels metrics and logs.
	Name           string
	SuccessTitle   string
	SuccessMessage string
	FailureTitle   string
	Fallback       string
}

var (
	SignInCopy = Copy{
		Name:           "sign_in",
		SuccessTitle:   "Success",
		SuccessMessage: "Signed in!",
		FailureTitle:   "Sign in failed",
		Fallback:       account.FallbackMessage,
	}
	SignUpCopy = Copy{
		Name:           "sign_up",
		SuccessTitle:   "Success",
		SuccessMessage: "Account created!",
		FailureTitle:   "Sign up failed",
		Fallback:       account.FallbackMessage,
	}
)

// Form holds the state of one credential form. The zero value is not usable;
// call New.
type Form struct {
	mu sync.Mutex

	email        string
	password     string
	showPassword bool

	errors  FieldErrors
	status  Status
	result  Status
	notice  *Notice
	session *account.Session

	op      Operation
	copy    Copy
	router  navigation.Router
	next    navigation.Route
	timeout time.Duration
	logger  *logging.SafeLogger
}

// Option configures a Form.
type Option func(*Form)

// WithRouter navigates to next after a successful submission.
func WithRouter(r navigation.Router, next navigation.Route) Option {
	return func(f *Form) {
		f.router = r
		f.next = next
	}
}

// WithTimeout bounds every operation call.
func WithTimeout(d time.Duration) Option {
	return func(f *Form) { f.timeout = d }
}

func WithLogger(l *logging.SafeLogger) Option {
	return func(f *Form) { f.logger = l }
}

// New creates an idle form submitting through op.
func New(op Operation, c Copy, opts ...Option) *Form {
	f := &Form{
		op:     op,
		copy:   c,
		errors: FieldErrors{},
		next:   navigation.Home,
		logger: logging.Logger,
	}
	for _, opt := range opts {
		opt(f)
	}
	f.logger = f.logger.With(zap.String("form", c.Name))
	return f
}

func (f *Form) SetEmail(email string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.email = email
}

func (f *Form) SetPassword(password string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.password = password
}

func (f *Form) Email() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.email
}

func (f *Form) Password() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.password
}

// TogglePassword flips masked/plain rendering of the password field.
func (f *Form) TogglePassword() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.showPassword = !f.showPassword
}

func (f *Form) ShowPassword() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.showPassword
}

// Errors returns a copy of the current field errors.
func (f *Form) Errors() FieldErrors {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(FieldErrors, len(f.errors))
	for k, v := range f.errors {
		out[k] = v
	}
	return out
}

func (f *Form) Status() Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

// Busy reports whether the submit action is disabled.
func (f *Form) Busy() bool {
	return f.Status() == Submitting
}

// Result is how the last submission settled: Succeeded, Failed, or Idle if none has.
func (f *Form) Result() Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.result
}

// Notice returns the last notice, or nil.
func (f *Form) Notice() *Notice {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.notice == nil {
		return nil
	}
	n := *f.notice
	return &n
}

// DismissNotice clears the notice once the user has seen it.
func (f *Form) DismissNotice() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notice = nil
}

// Session returns the session of the last successful submission.
func (f *Form) Session() *account.Session {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.session
}

// Submit validates the input and, if valid, runs the operation once.
// Status is back to Idle when Submit returns.
func (f *Form) Submit(ctx context.Context) Outcome {
	f.mu.Lock()
	if f.status == Submitting {
		f.mu.Unlock()
		f.record(OutcomeIgnored)
		return OutcomeIgnored
	}

	f.errors = Validate(f.email, f.password)
	if !f.errors.Valid() {
		f.mu.Unlock()
		f.record(OutcomeInvalid)
		return OutcomeInvalid
	}

	f.status = Submitting
	f.notice = nil
	email, password := f.email, f.password
	f.mu.Unlock()

	f.logger.Debug("submitting", zap.String("email", observability.MaskEmail(email)))

	session, err := invoke(ctx, f.copy.Name, f.timeout, f.logger, func(ctx context.Context) (*account.Session, error) {
		return f.op(ctx, email, password)
	})

	outcome := f.settle(session, err)
	f.record(outcome)

	if outcome == OutcomeSucceeded && f.router != nil {
		f.router.Replace(f.next)
	}
	return outcome
}

func (f *Form) settle(session *account.Session, err error) Outcome {
	f.mu.Lock()
	defer f.mu.Unlock()
	defer func() { f.status = Idle }()

	if err != nil {
		f.status = Failed
		f.result = Failed
		f.notice = &Notice{Title: f.copy.FailureTitle, Message: account.Message(err, f.copy.Fallback)}
		f.logger.Info("submission failed", zap.Error(err))
		return OutcomeFailed
	}

	f.status = Succeeded
	f.result = Succeeded
	f.session = session
	f.notice = &Notice{Title: f.copy.SuccessTitle, Message: f.copy.SuccessMessage}
	return OutcomeSucceeded
}

func (f *Form) record(o Outcome) {
	observability.FormSubmissions.WithLabelValues(f.copy.Name, o.String()).Inc()
}
