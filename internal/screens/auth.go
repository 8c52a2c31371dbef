package screens

import (
	"github.com/jirani-app/app-jirani/internal/account"
	"github.com/jirani-app/app-jirani/internal/form"
	"github.com/jirani-app/app-jirani/internal/navigation"
)

// Splash is the intro screen.
type Splash struct {
	deps Deps
}

func NewSplash(d Deps) *Splash {
	return &Splash{deps: d}
}

func (s *Splash) Title() string   { return s.deps.Variant.Name }
func (s *Splash) Tagline() string { return s.deps.Variant.Tagline }

// GetStarted opens the sign-in screen.
func (s *Splash) GetStarted() {
	s.deps.Router.Push(navigation.SignIn)
}

// SignIn is the provider chooser.
type SignIn struct {
	deps     Deps
	Google   *form.ProviderButton
	Facebook *form.ProviderButton
}

func NewSignIn(d Deps) *SignIn {
	return &SignIn{
		deps:     d,
		Google:   providerButton(d, account.ProviderGoogle, "sign-in"),
		Facebook: providerButton(d, account.ProviderFacebook, "sign-in"),
	}
}

func (s *SignIn) Copy() Copy {
	return Copy{
		Eyebrow:  s.deps.Variant.Welcome(),
		Headline: s.deps.Variant.Headline,
		Body:     s.deps.Variant.Pitch,
	}
}

// SignInWithEmail opens the email form.
func (s *SignIn) SignInWithEmail() {
	s.deps.Router.Push(navigation.EmailSignIn)
}

// CreateAccount follows the "New here?" link.
func (s *SignIn) CreateAccount() {
	s.deps.Router.Push(navigation.SignUp)
}

// EmailSignIn is the email and password sign-in form.
type EmailSignIn struct {
	*form.Form
	deps Deps
}

func NewEmailSignIn(d Deps) *EmailSignIn {
	return &EmailSignIn{
		Form: newForm(d, d.Client.SignIn, form.SignInCopy),
		deps: d,
	}
}

func (s *EmailSignIn) Copy() Copy {
	return Copy{
		Eyebrow:  "Welcome back",
		Headline: "Sign in with Email",
		Body:     s.deps.Variant.ReturnPitch,
	}
}

func (s *EmailSignIn) Back() {
	s.deps.Router.Back()
}

func (s *EmailSignIn) CreateAccount() {
	s.deps.Router.Push(navigation.SignUp)
}

// SignUp is the account creation form with the provider shortcuts.
type SignUp struct {
	*form.Form
	deps     Deps
	Google   *form.ProviderButton
	Facebook *form.ProviderButton
}

func NewSignUp(d Deps) *SignUp {
	return &SignUp{
		Form:     newForm(d, d.Client.SignUp, form.SignUpCopy),
		deps:     d,
		Google:   providerButton(d, account.ProviderGoogle, "sign-up"),
		Facebook: providerButton(d, account.ProviderFacebook, "sign-up"),
	}
}

func (s *SignUp) Copy() Copy {
	return Copy{
		Eyebrow:  s.deps.Variant.Welcome(),
		Headline: "Create your account",
		Body:     s.deps.Variant.SignUpPitch,
	}
}

func (s *SignUp) Back() {
	s.deps.Router.Back()
}

// SignIn follows the "Already have an account?" link.
func (s *SignUp) SignIn() {
	s.deps.Router.Push(navigation.SignIn)
}

func newForm(d Deps, op form.Operation, c form.Copy) *form.Form {
	return form.New(op, c,
		form.WithRouter(d.Router, navigation.Home),
		form.WithTimeout(d.Timeout),
		form.WithLogger(d.logger()),
	)
}

func providerButton(d Deps, p account.Provider, verb string) *form.ProviderButton {
	b := form.NewProviderButton(d.Client, p, verb, d.Router)
	b.SetTimeout(d.Timeout)
	return b
}
