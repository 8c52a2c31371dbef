package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jirani-app/app-jirani/internal/account"
	"github.com/jirani-app/app-jirani/internal/config"
	"github.com/jirani-app/app-jirani/internal/logging"
	"github.com/jirani-app/app-jirani/internal/models"
	"github.com/jirani-app/app-jirani/internal/redisclient"
	"github.com/jirani-app/app-jirani/internal/utils"
	"github.com/jirani-app/app-jirani/internal/utils/httpclient"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/facebook"
	"golang.org/x/oauth2/google"
)

const oauthStateKeyPrefix = "oauth_state:"

// Userinfo endpoints of the supported providers
const (
	GoogleUserInfoURL   = "https://www.googleapis.com/oauth2/v3/userinfo"
	FacebookUserInfoURL = "https://graph.facebook.com/me?fields=id,name,email"
)

// OAuthProvider configures one external sign-in provider
type OAuthProvider struct {
	ClientID     string
	ClientSecret string
	Endpoint     oauth2.Endpoint
	Scopes       []string
	UserInfoURL  string
}

// DefaultOAuthProviders builds the provider set from the loaded configuration.
// Providers without a client ID are left out.
func DefaultOAuthProviders(cfg *config.Config) map[account.Provider]OAuthProvider {
	providers := map[account.Provider]OAuthProvider{}
	if cfg.GoogleClientID != "" {
		providers[account.ProviderGoogle] = OAuthProvider{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       []string{"openid", "email", "profile"},
			UserInfoURL:  GoogleUserInfoURL,
		}
	}
	if cfg.FacebookClientID != "" {
		providers[account.ProviderFacebook] = OAuthProvider{
			ClientID:     cfg.FacebookClientID,
			ClientSecret: cfg.FacebookClientSecret,
			Endpoint:     facebook.Endpoint,
			Scopes:       []string{"email", "public_profile"},
			UserInfoURL:  FacebookUserInfoURL,
		}
	}
	return providers
}

// OAuthService runs the provider side of Google and Facebook sign-in
type OAuthService struct {
	configs  map[account.Provider]*oauth2.Config
	userInfo map[account.Provider]string
	states   *redisclient.Client
	stateTTL time.Duration
	pool     *httpclient.HTTPClientPool
	logger   *logging.SafeLogger
}

// NewOAuthService creates a new OAuth service. Redirect URLs are
// redirectBase/<provider>/callback.
func NewOAuthService(providers map[account.Provider]OAuthProvider, redirectBase string, states *redisclient.Client, stateTTL time.Duration, pool *httpclient.HTTPClientPool, logger *logging.SafeLogger) *OAuthService {
	if pool == nil {
		pool = httpclient.GetGlobalPool()
	}
	s := &OAuthService{
		configs:  make(map[account.Provider]*oauth2.Config, len(providers)),
		userInfo: make(map[account.Provider]string, len(providers)),
		states:   states,
		stateTTL: stateTTL,
		pool:     pool,
		logger:   logger,
	}
	redirectBase = strings.TrimRight(redirectBase, "/")
	for provider, p := range providers {
		s.configs[provider] = &oauth2.Config{
			ClientID:     p.ClientID,
			ClientSecret: p.ClientSecret,
			Endpoint:     p.Endpoint,
			Scopes:       p.Scopes,
			RedirectURL:  redirectBase + "/" + string(provider) + "/callback",
		}
		s.userInfo[provider] = p.UserInfoURL
	}
	return s
}

// Enabled reports whether provider is configured
func (s *OAuthService) Enabled(provider account.Provider) bool {
	_, ok := s.configs[provider]
	return ok
}

// AuthURL starts a redirect flow and returns the consent URL with a fresh single-use state
func (s *OAuthService) AuthURL(ctx context.Context, provider account.Provider) (*models.AuthStartResponse, error) {
	cfg, ok := s.configs[provider]
	if !ok {
		return nil, models.ErrProviderNotConfigured
	}

	state := uuid.NewString()
	if err := s.states.Set(ctx, oauthStateKeyPrefix+state, string(provider), s.stateTTL).Err(); err != nil {
		return nil, fmt.Errorf("failed to store oauth state: %w", err)
	}

	return &models.AuthStartResponse{
		Provider: string(provider),
		AuthURL:  cfg.AuthCodeURL(state, oauth2.AccessTypeOnline),
		State:    state,
	}, nil
}

// Exchange completes a redirect flow: it consumes the state, trades the code
// for a token and resolves the provider identity.
func (s *OAuthService) Exchange(ctx context.Context, provider account.Provider, state, code string) (models.Identity, error) {
	cfg, ok := s.configs[provider]
	if !ok {
		return models.Identity{}, models.ErrProviderNotConfigured
	}

	stored, err := s.states.GetDel(ctx, oauthStateKeyPrefix+state).Result()
	if errors.Is(err, redis.Nil) || (err == nil && stored != string(provider)) {
		return models.Identity{}, models.ErrInvalidOAuthState
	}
	if err != nil {
		return models.Identity{}, fmt.Errorf("failed to read oauth state: %w", err)
	}

	ctx, span, end := utils.TraceExternalService(ctx, string(provider), "token_exchange")
	defer end()

	client := s.pool.Get()
	defer s.pool.Put(client)

	token, err := cfg.Exchange(context.WithValue(ctx, oauth2.HTTPClient, client), code)
	if err != nil {
		utils.RecordErrorInSpan(span, err, nil)
		return models.Identity{}, fmt.Errorf("failed to exchange %s code: %w", provider, err)
	}

	return s.FetchIdentity(ctx, provider, token.AccessToken)
}

type googleUserInfo struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
}

// facebookUserInfo carries no verification flag, so Facebook emails are
// never trusted for account linking.
type facebookUserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// FetchIdentity resolves the identity behind a provider access token
func (s *OAuthService) FetchIdentity(ctx context.Context, provider account.Provider, accessToken string) (models.Identity, error) {
	url, ok := s.userInfo[provider]
	if !ok {
		return models.Identity{}, models.ErrProviderNotConfigured
	}

	ctx, span, end := utils.TraceExternalService(ctx, string(provider), "userinfo")
	defer end()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return models.Identity{}, fmt.Errorf("failed to build userinfo request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	client := s.pool.Get()
	defer s.pool.Put(client)

	resp, err := client.Do(req)
	if err != nil {
		utils.RecordErrorInSpan(span, err, nil)
		return models.Identity{}, fmt.Errorf("failed to call %s userinfo: %w", provider, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return models.Identity{}, fmt.Errorf("failed to read userinfo response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusBadRequest {
		return models.Identity{}, models.ErrInvalidToken
	}
	if resp.StatusCode != http.StatusOK {
		s.logger.Warn("unexpected userinfo response",
			zap.String("provider", string(provider)),
			zap.Int("status", resp.StatusCode))
		return models.Identity{}, fmt.Errorf("%s userinfo returned status %d", provider, resp.StatusCode)
	}

	identity := models.Identity{Provider: string(provider)}
	switch provider {
	case account.ProviderGoogle:
		var info googleUserInfo
		if err := json.Unmarshal(body, &info); err != nil {
			return models.Identity{}, fmt.Errorf("failed to decode google userinfo: %w", err)
		}
		identity.Subject = info.Sub
		if info.EmailVerified {
			identity.Email = info.Email
			identity.EmailVerified = true
		}
	case account.ProviderFacebook:
		var info facebookUserInfo
		if err := json.Unmarshal(body, &info); err != nil {
			return models.Identity{}, fmt.Errorf("failed to decode facebook userinfo: %w", err)
		}
		identity.Subject = info.ID
		identity.Email = info.Email
	}

	if identity.Subject == "" {
		return models.Identity{}, models.ErrInvalidToken
	}
	return identity, nil
}
