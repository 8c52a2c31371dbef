package account

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jirani-app/app-jirani/internal/utils/httpclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticTokens struct {
	token string
	err   error
}

func (s staticTokens) ProviderToken(_ context.Context, _ Provider) (string, error) {
	return s.token, s.err
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/auth/sign-in", func(w http.ResponseWriter, r *http.Request) {
		var req credentialsRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Password != "123456" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"Invalid email or password."}`))
			return
		}
		_ = json.NewEncoder(w).Encode(Session{Token: "tok", UserID: "u1", Email: req.Email})
	})
	mux.HandleFunc("/v1/auth/sign-up", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	mux.HandleFunc("/v1/auth/providers/google", func(w http.ResponseWriter, r *http.Request) {
		var req providerRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "ya29.token", req.AccessToken)
		_ = json.NewEncoder(w).Encode(Session{Token: "tok-g", UserID: "u2", Email: "g@example.com"})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPClient_SignIn(t *testing.T) {
	srv := newTestServer(t)
	client := NewHTTPClient(srv.URL+"/", httpclient.NewHTTPClientPool(1, 5*time.Second), nil)

	session, err := client.SignIn(context.Background(), "a@b.co", "123456")
	require.NoError(t, err)
	assert.Equal(t, "tok", session.Token)
	assert.Equal(t, "a@b.co", session.Email)
}

func TestHTTPClient_SignIn_Rejected(t *testing.T) {
	srv := newTestServer(t)
	client := NewHTTPClient(srv.URL, nil, nil)

	_, err := client.SignIn(context.Background(), "a@b.co", "wrong-password")
	require.Error(t, err)

	var opErr *OperationError
	require.True(t, errors.As(err, &opErr))
	assert.Equal(t, http.StatusUnauthorized, opErr.Status)
	assert.Equal(t, "Invalid email or password.", Message(err, FallbackMessage))
}

func TestHTTPClient_SignUp_ServerErrorUsesFallback(t *testing.T) {
	srv := newTestServer(t)
	client := NewHTTPClient(srv.URL, nil, nil)

	_, err := client.SignUp(context.Background(), "a@b.co", "123456")
	require.Error(t, err)
	assert.Equal(t, FallbackMessage, Message(err, FallbackMessage))
}

func TestHTTPClient_UndecodableSessionUsesFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>gateway login</html>"))
	}))
	t.Cleanup(srv.Close)

	client := NewHTTPClient(srv.URL, nil, staticTokens{token: "ya29.token"})

	_, err := client.SignIn(context.Background(), "a@b.co", "123456")
	require.Error(t, err)
	assert.Equal(t, FallbackMessage, Message(err, FallbackMessage))
	assert.Contains(t, err.Error(), "failed to decode session")

	_, err = client.SignInWithProvider(context.Background(), ProviderGoogle)
	require.Error(t, err)
	assert.Equal(t, "Try again.", Message(err, "Try again."))
}

func TestHTTPClient_Provider(t *testing.T) {
	srv := newTestServer(t)

	t.Run("with token source", func(t *testing.T) {
		client := NewHTTPClient(srv.URL, nil, staticTokens{token: "ya29.token"})
		session, err := client.SignInWithProvider(context.Background(), ProviderGoogle)
		require.NoError(t, err)
		assert.Equal(t, "tok-g", session.Token)
	})

	t.Run("without token source", func(t *testing.T) {
		client := NewHTTPClient(srv.URL, nil, nil)
		_, err := client.SignInWithProvider(context.Background(), ProviderFacebook)
		require.Error(t, err)
		assert.Equal(t, "Facebook sign-in is not available.", Message(err, FallbackMessage))
	})

	t.Run("token source fails", func(t *testing.T) {
		client := NewHTTPClient(srv.URL, nil, staticTokens{err: errors.New("user cancelled")})
		_, err := client.SignInWithProvider(context.Background(), ProviderGoogle)
		require.Error(t, err)
		assert.Equal(t, "user cancelled", Message(err, FallbackMessage))
	})
}

func TestHTTPClient_Unreachable(t *testing.T) {
	client := NewHTTPClient("http://127.0.0.1:1", nil, nil)

	_, err := client.SignIn(context.Background(), "a@b.co", "123456")
	require.Error(t, err)
	assert.Equal(t, "Unable to reach the server. Check your connection.", Message(err, FallbackMessage))
}
