package account

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/jirani-app/app-jirani/internal/utils/httpclient"
)

// TokenSource yields the access token a native provider SDK obtained for the user.
type TokenSource interface {
	ProviderToken(ctx context.Context, provider Provider) (string, error)
}

// HTTPClient talks to the /v1/auth endpoints of this service.
type HTTPClient struct {
	baseURL string
	pool    *httpclient.HTTPClientPool
	tokens  TokenSource
}

// NewHTTPClient builds a client for baseURL (e.g. https://api.jirani.app).
// tokens may be nil when provider sign-in is not offered.
func NewHTTPClient(baseURL string, pool *httpclient.HTTPClientPool, tokens TokenSource) *HTTPClient {
	if pool == nil {
		pool = httpclient.GetGlobalPool()
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		pool:    pool,
		tokens:  tokens,
	}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type providerRequest struct {
	AccessToken string `json:"access_token"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (c *HTTPClient) SignIn(ctx context.Context, email, password string) (*Session, error) {
	return c.post(ctx, "sign in", "/v1/auth/sign-in", credentialsRequest{Email: email, Password: password})
}

func (c *HTTPClient) SignUp(ctx context.Context, email, password string) (*Session, error) {
	return c.post(ctx, "sign up", "/v1/auth/sign-up", credentialsRequest{Email: email, Password: password})
}

func (c *HTTPClient) SignInWithProvider(ctx context.Context, provider Provider) (*Session, error) {
	op := provider.DisplayName() + " sign-in"
	if c.tokens == nil {
		return nil, &OperationError{Op: op, Message: provider.DisplayName() + " sign-in is not available."}
	}
	token, err := c.tokens.ProviderToken(ctx, provider)
	if err != nil {
		return nil, &OperationError{Op: op, Err: err}
	}
	return c.post(ctx, op, "/v1/auth/providers/"+string(provider), providerRequest{AccessToken: token})
}

func (c *HTTPClient) post(ctx context.Context, op, path string, body interface{}) (*Session, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, &OperationError{Op: op, Err: fmt.Errorf("failed to encode request: %w", err), internal: true}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, &OperationError{Op: op, Err: err, internal: true}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	client := c.pool.Get()
	defer c.pool.Put(client)

	resp, err := client.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, &OperationError{Op: op, Err: ctx.Err()}
		}
		return nil, &OperationError{Op: op, Message: "Unable to reach the server. Check your connection.", Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, &OperationError{Op: op, Err: fmt.Errorf("failed to read response: %w", err), internal: true}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr errorResponse
		_ = json.Unmarshal(data, &apiErr)
		return nil, &OperationError{Op: op, Status: resp.StatusCode, Message: apiErr.Error}
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, &OperationError{Op: op, Err: fmt.Errorf("failed to decode session: %w", err), internal: true}
	}
	return &session, nil
}
