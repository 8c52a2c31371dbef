package screens

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jirani-app/app-jirani/internal/form"
	"github.com/jirani-app/app-jirani/internal/navigation"
	"github.com/jirani-app/app-jirani/internal/observability"
	"github.com/jirani-app/app-jirani/internal/profile"
	"go.uber.org/zap"
)

// SignOutFunc revokes the current session.
type SignOutFunc func(ctx context.Context) error

// Profile is the profile tab. Its state is seeded at mount and changed only
// through the add and edit actions.
type Profile struct {
	mu       sync.Mutex
	state    profile.Profile
	menuOpen bool
	notice   *form.Notice

	deps    Deps
	signOut SignOutFunc
}

// NewProfile mounts the screen with seed, e.g. profile.MockProfile() or the
// profile fetched from the API. signOut may be nil.
func NewProfile(d Deps, seed profile.Profile, signOut SignOutFunc) *Profile {
	return &Profile{state: seed, deps: d, signOut: signOut}
}

// State returns the current profile.
func (s *Profile) State() profile.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Profile) Completion() profile.Completion {
	return profile.ComputeCompletion(s.State())
}

// ProgressWidth is the completion bar width as a percentage.
func (s *Profile) ProgressWidth() int {
	return profile.ProgressWidth(s.Completion())
}

func (s *Profile) Rows() []profile.Row {
	return profile.Rows(s.State())
}

func (s *Profile) Initials() string {
	st := s.State()
	if st.Name == nil {
		return profile.Initials("")
	}
	return profile.Initials(*st.Name)
}

// Header returns the title and subtitle of the profile card.
func (s *Profile) Header() (title, subtitle string) {
	st := s.State()
	return profile.DisplayName(st), profile.DisplayEmail(st)
}

func (s *Profile) Pitch() string {
	return s.deps.Variant.ProfilePitch
}

// Update applies a mutator to the profile. On error the state is unchanged.
func (s *Profile) Update(field profile.Field, mutate func(profile.Profile) (profile.Profile, error)) error {
	s.mu.Lock()
	next, err := mutate(s.state)
	if err == nil {
		s.state = next
	}
	s.mu.Unlock()

	status := "success"
	if err != nil {
		status = "failed"
	}
	observability.ProfileUpdates.WithLabelValues(string(field), status).Inc()
	return err
}

// Perform runs the action attached to a row. Quick-add actions fill the
// field with its placeholder; edit opens the edit screen.
func (s *Profile) Perform(action profile.Action) error {
	if action == profile.ActionEditProfile {
		s.EditProfile()
		return nil
	}
	field, ok := profile.QuickAddAction(action)
	if !ok {
		return fmt.Errorf("%w: %q", profile.ErrQuickAddNotSupported, action)
	}
	now := s.deps.now()
	return s.Update(field, func(p profile.Profile) (profile.Profile, error) {
		return profile.QuickAdd(p, field, now)
	})
}

func (s *Profile) AddPassport(number string, expiresOn time.Time) error {
	now := s.deps.now()
	return s.Update(profile.FieldPassport, func(p profile.Profile) (profile.Profile, error) {
		return profile.AddPassport(p, number, expiresOn, now)
	})
}

func (s *Profile) AddNationalID(number string) error {
	return s.Update(profile.FieldNationalID, func(p profile.Profile) (profile.Profile, error) {
		return profile.AddNationalID(p, number)
	})
}

func (s *Profile) AddPaymentMethod(brand, last4 string) error {
	return s.Update(profile.FieldPayment, func(p profile.Profile) (profile.Profile, error) {
		return profile.AddPaymentMethod(p, brand, last4)
	})
}

func (s *Profile) AddEmergencyContact(name, phone string) error {
	return s.Update(profile.FieldEmergencyContact, func(p profile.Profile) (profile.Profile, error) {
		return profile.AddEmergencyContact(p, name, phone)
	})
}

// EditProfile opens the identity editor.
func (s *Profile) EditProfile() {
	s.deps.Router.Push(navigation.ProfileEdit)
}

// ToggleMenu opens or closes the dropdown menu.
func (s *Profile) ToggleMenu() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.menuOpen = !s.menuOpen
}

func (s *Profile) MenuOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.menuOpen
}

func (s *Profile) Menu() []navigation.MenuItem {
	return navigation.ProfileMenu()
}

// SelectMenu closes the menu and follows item.
func (s *Profile) SelectMenu(ctx context.Context, item navigation.MenuItem) {
	s.mu.Lock()
	s.menuOpen = false
	s.mu.Unlock()

	if item.Action == navigation.ActionLogOut {
		s.logOut(ctx)
		return
	}
	if item.Route != "" {
		s.deps.Router.Push(item.Route)
	}
}

func (s *Profile) logOut(ctx context.Context) {
	if s.signOut != nil {
		if err := s.signOut(ctx); err != nil {
			s.deps.logger().Warn("sign out failed", zap.Error(err))
			s.setNotice(&form.Notice{Title: "Log out failed", Message: form.ProviderFallback})
			return
		}
	}
	s.setNotice(&form.Notice{Title: "Log out", Message: "You’ve been logged out."})
	s.deps.Router.Replace(navigation.SignIn)
}

func (s *Profile) setNotice(n *form.Notice) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notice = n
}

func (s *Profile) Notice() *form.Notice {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.notice == nil {
		return nil
	}
	n := *s.notice
	return &n
}
