package screens

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jirani-app/app-jirani/internal/account"
	"github.com/jirani-app/app-jirani/internal/form"
	"github.com/jirani-app/app-jirani/internal/navigation"
	"github.com/jirani-app/app-jirani/internal/profile"
	"github.com/jirani-app/app-jirani/internal/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingClient rejects every call with the same error.
type failingClient struct {
	err error
}

func (c failingClient) SignIn(context.Context, string, string) (*account.Session, error) {
	return nil, c.err
}

func (c failingClient) SignUp(context.Context, string, string) (*account.Session, error) {
	return nil, c.err
}

func (c failingClient) SignInWithProvider(context.Context, account.Provider) (*account.Session, error) {
	return nil, c.err
}

func newDeps(root navigation.Route, client account.Client) (Deps, *navigation.Stack) {
	router := navigation.NewStack(root)
	return Deps{
		Client:  client,
		Router:  router,
		Variant: theme.VariantFor(theme.VariantJirani),
		Now:     func() time.Time { return time.Date(2026, time.January, 10, 9, 0, 0, 0, time.UTC) },
	}, router
}

func TestOnboardingFlow(t *testing.T) {
	d, router := newDeps(navigation.Splash, &account.StubClient{})

	splash := NewSplash(d)
	assert.Equal(t, "Jirani", splash.Title())
	assert.Equal(t, "Digital Tourism Adventure Pass", splash.Tagline())
	splash.GetStarted()
	assert.Equal(t, navigation.SignIn, router.Current())

	signIn := NewSignIn(d)
	assert.Equal(t, "Welcome to Jirani", signIn.Copy().Eyebrow)
	assert.Equal(t, "Continue with Google", signIn.Google.Label())
	assert.Equal(t, "Continue with Facebook", signIn.Facebook.Label())
	signIn.SignInWithEmail()
	assert.Equal(t, navigation.EmailSignIn, router.Current())

	email := NewEmailSignIn(d)
	email.SetEmail("alex@example.com")
	email.SetPassword("secret1")
	require.Equal(t, form.OutcomeSucceeded, email.Submit(context.Background()))

	assert.Equal(t, navigation.Home, router.Current())
	assert.Equal(t, []navigation.Route{navigation.Splash, navigation.SignIn, navigation.Home}, router.History())
}

func TestEmailSignIn_InvalidStaysOnScreen(t *testing.T) {
	d, router := newDeps(navigation.EmailSignIn, &account.StubClient{})
	s := NewEmailSignIn(d)
	s.SetEmail("bad-email")
	s.SetPassword("123456")

	assert.Equal(t, form.OutcomeInvalid, s.Submit(context.Background()))
	assert.Equal(t, navigation.EmailSignIn, router.Current())
	assert.Equal(t, "Sign in with Email", s.Copy().Headline)
}

func TestSignUp_FailureShowsNotice(t *testing.T) {
	d, router := newDeps(navigation.SignUp, failingClient{err: &account.OperationError{Message: "Email already registered."}})
	s := NewSignUp(d)
	s.SetEmail("alex@example.com")
	s.SetPassword("secret1")

	assert.Equal(t, form.OutcomeFailed, s.Submit(context.Background()))
	assert.Equal(t, &form.Notice{Title: "Sign up failed", Message: "Email already registered."}, s.Notice())
	assert.Equal(t, navigation.SignUp, router.Current())

	assert.Equal(t, form.OutcomeFailed, s.Google.Press(context.Background()))
	assert.Equal(t, "Google sign-up failed", s.Google.Notice().Title)
}

func TestSignUp_Links(t *testing.T) {
	d, router := newDeps(navigation.SignIn, &account.StubClient{})
	signIn := NewSignIn(d)
	signIn.CreateAccount()
	require.Equal(t, navigation.SignUp, router.Current())

	s := NewSignUp(d)
	assert.Equal(t, "Create your account", s.Copy().Headline)
	s.Back()
	assert.Equal(t, navigation.SignIn, router.Current())

	s.SignIn()
	assert.Equal(t, navigation.SignIn, router.Current())
	assert.Len(t, router.History(), 2)
}

func TestHomeAndBrowse(t *testing.T) {
	d, router := newDeps(navigation.Home, &account.StubClient{})

	home := NewHome(d)
	assert.Equal(t, "Jirani", home.Title())
	assert.Equal(t, "Create Trip Plan", home.ActionLabel())
	assert.Equal(t, "assets/icons/splash-icon-dark.png", home.Logo(theme.Light))
	home.CreatePlan()
	assert.Equal(t, navigation.Browse, router.Current())

	assert.Equal(t, "Browse", NewBrowse(d).Title())

	d.Variant = theme.VariantFor(theme.VariantBiblion)
	assert.Equal(t, "Library", NewBrowse(d).Title())
	assert.Equal(t, "Read", Tabs(d)[0].Title)
}

func TestProfile_QuickAddRaisesCompletion(t *testing.T) {
	d, _ := newDeps(navigation.Profile, &account.StubClient{})
	s := NewProfile(d, profile.MockProfile(), nil)

	assert.Equal(t, "AN", s.Initials())
	assert.Equal(t, profile.Completion{Done: 3, Total: 7, Percent: 43}, s.Completion())

	for _, row := range s.Rows() {
		if row.Added || row.Action == profile.ActionEditProfile {
			continue
		}
		require.NoError(t, s.Perform(row.Action), "action %s", row.Action)
	}

	assert.Equal(t, profile.Completion{Done: 7, Total: 7, Percent: 100}, s.Completion())
	assert.Equal(t, 100, s.ProgressWidth())
	for _, row := range s.Rows() {
		assert.Equal(t, profile.StatusAdded, row.Status)
	}
}

func TestProfile_EmptySeed(t *testing.T) {
	d, router := newDeps(navigation.Profile, &account.StubClient{})
	s := NewProfile(d, profile.Profile{}, nil)

	assert.Equal(t, "GU", s.Initials())
	title, subtitle := s.Header()
	assert.Equal(t, "Add your name", title)
	assert.Equal(t, "Add email", subtitle)
	assert.Equal(t, 6, s.ProgressWidth())

	require.NoError(t, s.Perform(profile.ActionEditProfile))
	assert.Equal(t, navigation.ProfileEdit, router.Current())
}

func TestProfile_InvalidUpdateKeepsState(t *testing.T) {
	d, _ := newDeps(navigation.Profile, &account.StubClient{})
	s := NewProfile(d, profile.MockProfile(), nil)

	err := s.AddPaymentMethod("VISA", "42")
	assert.ErrorIs(t, err, profile.ErrInvalidLast4)
	assert.Equal(t, profile.MockProfile(), s.State())

	err = s.AddPassport("PN1", time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, profile.ErrPassportExpired)

	require.NoError(t, s.AddNationalID("1199"))
	require.NoError(t, s.AddEmergencyContact("Patricia", "+250 789 000 111"))
	assert.Equal(t, 5, s.Completion().Done)

	assert.ErrorIs(t, s.Perform(profile.Action("share")), profile.ErrQuickAddNotSupported)
}

func TestProfile_Menu(t *testing.T) {
	d, router := newDeps(navigation.Profile, &account.StubClient{})
	signedOut := false
	s := NewProfile(d, profile.MockProfile(), func(context.Context) error {
		signedOut = true
		return nil
	})

	s.ToggleMenu()
	assert.True(t, s.MenuOpen())

	menu := s.Menu()
	s.SelectMenu(context.Background(), menu[0])
	assert.False(t, s.MenuOpen())
	assert.Equal(t, navigation.Settings, router.Current())

	s.ToggleMenu()
	s.SelectMenu(context.Background(), menu[len(menu)-1])
	assert.True(t, signedOut)
	assert.Equal(t, "Log out", s.Notice().Title)
	assert.Equal(t, navigation.SignIn, router.Current())
}

func TestProfile_LogOutFailure(t *testing.T) {
	d, router := newDeps(navigation.Profile, &account.StubClient{})
	s := NewProfile(d, profile.MockProfile(), func(context.Context) error {
		return errors.New("redis down")
	})

	s.SelectMenu(context.Background(), navigation.MenuItem{Label: "Log out", Action: navigation.ActionLogOut})

	assert.Equal(t, "Log out failed", s.Notice().Title)
	assert.Equal(t, navigation.Profile, router.Current())
}
