package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jirani-app/app-jirani/internal/account"
	"github.com/jirani-app/app-jirani/internal/models"
	"github.com/jirani-app/app-jirani/internal/profile"
	"github.com/jirani-app/app-jirani/internal/services"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	if err := SetupValidation(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// withUser stands in for the auth middleware
func withUser(userID, email string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("user_email", email)
		c.Set("session_id", "session-"+userID)
		c.Next()
	}
}

func doJSON(router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			_ = json.NewEncoder(&buf).Encode(body)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("failed to decode %q: %v", w.Body.String(), err)
	}
}

type fakeAccounts struct {
	mu        sync.Mutex
	users     map[string]string // email -> password
	signedOut []string
	created   bool
	err       error
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{users: map[string]string{"alex@example.com": "secret1"}}
}

func (f *fakeAccounts) session(email string) *models.SessionResponse {
	return &models.SessionResponse{Token: "token-" + email, UserID: "id-" + email, Email: email, ExpiresAt: "2026-03-02T00:00:00Z"}
}

func (f *fakeAccounts) SignUp(_ context.Context, email, password string) (*models.SessionResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	email = services.NormalizeEmail(email)
	if _, ok := f.users[email]; ok {
		return nil, models.ErrEmailTaken
	}
	f.users[email] = password
	return f.session(email), nil
}

func (f *fakeAccounts) SignIn(_ context.Context, email, password string) (*models.SessionResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	email = services.NormalizeEmail(email)
	if f.users[email] != password {
		return nil, models.ErrInvalidCredentials
	}
	return f.session(email), nil
}

func (f *fakeAccounts) SignInWithIdentity(_ context.Context, identity models.Identity) (*models.SessionResponse, bool, error) {
	if identity.Email == "" {
		return nil, false, models.ErrProviderEmailMissing
	}
	return f.session(identity.Email), f.created, nil
}

func (f *fakeAccounts) SignOut(_ context.Context, sessionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signedOut = append(f.signedOut, sessionID)
	return nil
}

type fakeProviders struct {
	identity models.Identity
	err      error
}

func (f *fakeProviders) AuthURL(_ context.Context, provider account.Provider) (*models.AuthStartResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.AuthStartResponse{Provider: string(provider), AuthURL: "https://accounts.example.com/auth?state=s1", State: "s1"}, nil
}

func (f *fakeProviders) Exchange(_ context.Context, _ account.Provider, state, code string) (models.Identity, error) {
	if state != "s1" {
		return models.Identity{}, models.ErrInvalidOAuthState
	}
	return f.identity, f.err
}

func (f *fakeProviders) FetchIdentity(_ context.Context, _ account.Provider, accessToken string) (models.Identity, error) {
	if accessToken != "good-token" {
		return models.Identity{}, models.ErrInvalidToken
	}
	return f.identity, f.err
}

type fakeLimiter struct{ allow bool }

func (f fakeLimiter) Allow(context.Context, string) bool { return f.allow }

// memoryProfiles is an in-memory ProfileStore
type memoryProfiles struct {
	mu       sync.Mutex
	profiles map[string]profile.Profile
	now      time.Time
}

func newMemoryProfiles() *memoryProfiles {
	return &memoryProfiles{
		profiles: map[string]profile.Profile{},
		now:      time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (m *memoryProfiles) Get(_ context.Context, userID string) (profile.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[userID]
	if !ok {
		return profile.Profile{}, models.ErrProfileNotFound
	}
	return p, nil
}

func (m *memoryProfiles) Ensure(_ context.Context, userID, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.profiles[userID]; !ok {
		p := profile.Profile{}
		if email != "" {
			p.Email = &email
		}
		m.profiles[userID] = p
	}
	return nil
}

func (m *memoryProfiles) Apply(ctx context.Context, userID string, _ []profile.Field, mutate services.Mutation) (profile.Profile, profile.Profile, error) {
	before, err := m.Get(ctx, userID)
	if err != nil {
		return before, before, err
	}
	after, err := mutate(before)
	if err != nil {
		return before, before, err
	}
	m.mu.Lock()
	m.profiles[userID] = after
	m.mu.Unlock()
	return before, after, nil
}

func (m *memoryProfiles) Now() time.Time { return m.now }
