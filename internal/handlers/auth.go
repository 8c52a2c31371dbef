package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jirani-app/app-jirani/internal/account"
	"github.com/jirani-app/app-jirani/internal/form"
	"github.com/jirani-app/app-jirani/internal/logging"
	"github.com/jirani-app/app-jirani/internal/models"
	"github.com/jirani-app/app-jirani/internal/services"
	"github.com/jirani-app/app-jirani/internal/utils"
	"go.uber.org/zap"
)

// AccountBackend is what the auth handlers need from the account service
type AccountBackend interface {
	SignUp(ctx context.Context, email, password string) (*models.SessionResponse, error)
	SignIn(ctx context.Context, email, password string) (*models.SessionResponse, error)
	SignInWithIdentity(ctx context.Context, identity models.Identity) (*models.SessionResponse, bool, error)
	SignOut(ctx context.Context, sessionID string) error
}

// IdentityProvider resolves identities at Google and Facebook
type IdentityProvider interface {
	AuthURL(ctx context.Context, provider account.Provider) (*models.AuthStartResponse, error)
	Exchange(ctx context.Context, provider account.Provider, state, code string) (models.Identity, error)
	FetchIdentity(ctx context.Context, provider account.Provider, accessToken string) (models.Identity, error)
}

// AttemptLimiter throttles credential attempts
type AttemptLimiter interface {
	Allow(ctx context.Context, key string) bool
}

// ProfileCreator seeds the profile of a new account
type ProfileCreator interface {
	Ensure(ctx context.Context, userID, email string) error
}

// AuthHandlers serves the /v1/auth endpoints
type AuthHandlers struct {
	logger    *logging.SafeLogger
	accounts  AccountBackend
	providers IdentityProvider
	profiles  ProfileCreator
	limiter   AttemptLimiter
}

// NewAuthHandlers creates the auth handlers. limiter may be nil.
func NewAuthHandlers(logger *logging.SafeLogger, accounts AccountBackend, providers IdentityProvider, profiles ProfileCreator, limiter AttemptLimiter) *AuthHandlers {
	return &AuthHandlers{
		logger:    logger,
		accounts:  accounts,
		providers: providers,
		profiles:  profiles,
		limiter:   limiter,
	}
}

const msgPasswordTooLong = "Password is too long."

// bindCredentials binds and validates an email and password body with the
// same rules the sign-in form applies locally.
func (h *AuthHandlers) bindCredentials(c *gin.Context) (models.CredentialsRequest, bool) {
	var req models.CredentialsRequest
	if !bindJSON(c, &req) {
		return req, false
	}

	errs := form.Validate(req.Email, req.Password)
	fields := make(map[string]string, len(errs)+1)
	for field, msg := range errs {
		fields[string(field)] = msg
	}
	if len(req.Password) > services.MaxPasswordBytes {
		fields[string(form.FieldPassword)] = msgPasswordTooLong
	}
	if len(fields) > 0 {
		c.JSON(http.StatusBadRequest, ValidationErrorResponse{Error: "Invalid request", Fields: fields})
		return req, false
	}

	if h.limiter != nil && !h.limiter.Allow(c.Request.Context(), c.ClientIP()+"|"+services.NormalizeEmail(req.Email)) {
		c.JSON(http.StatusTooManyRequests, ErrorResponse{Error: "Too many attempts. Try again in a minute."})
		return req, false
	}
	return req, true
}

// SignIn godoc
// @Summary Sign in with email
// @Description Signs in with email and password and returns a session token.
// @Tags auth
// @Accept json
// @Produce json
// @Param data body models.CredentialsRequest true "Credentials"
// @Success 200 {object} models.SessionResponse "Signed in"
// @Failure 400 {object} ValidationErrorResponse "Invalid email, short or too long password"
// @Failure 401 {object} ErrorResponse "Wrong email or password"
// @Failure 429 {object} ErrorResponse "Too many attempts"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /auth/sign-in [post]
func (h *AuthHandlers) SignIn(c *gin.Context) {
	req, ok := h.bindCredentials(c)
	if !ok {
		return
	}

	session, err := h.accounts.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Incorrect email or password."})
			return
		}
		h.logger.Error("sign in failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Sign in failed. Please try again."})
		return
	}

	h.audit(c, session, func(ctx context.Context, auditCtx utils.AuditContext) error {
		return utils.LogSignIn(ctx, auditCtx, "password")
	})
	c.JSON(http.StatusOK, session)
}

// SignUp godoc
// @Summary Create an account
// @Description Creates an account with email and password, creates its empty profile and returns a session token.
// @Tags auth
// @Accept json
// @Produce json
// @Param data body models.CredentialsRequest true "Credentials"
// @Success 201 {object} models.SessionResponse "Account created"
// @Failure 400 {object} ValidationErrorResponse "Invalid email, short or too long password"
// @Failure 409 {object} ErrorResponse "Email already registered"
// @Failure 429 {object} ErrorResponse "Too many attempts"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /auth/sign-up [post]
func (h *AuthHandlers) SignUp(c *gin.Context) {
	req, ok := h.bindCredentials(c)
	if !ok {
		return
	}

	session, err := h.accounts.SignUp(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, models.ErrEmailTaken) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: "An account with this email already exists."})
			return
		}
		if errors.Is(err, models.ErrPasswordTooLong) {
			c.JSON(http.StatusBadRequest, ValidationErrorResponse{
				Error:  "Invalid request",
				Fields: map[string]string{string(form.FieldPassword): msgPasswordTooLong},
			})
			return
		}
		h.logger.Error("sign up failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Sign up failed. Please try again."})
		return
	}

	h.ensureProfile(c, session)
	h.audit(c, session, func(ctx context.Context, auditCtx utils.AuditContext) error {
		return utils.LogSignUp(ctx, auditCtx, "password")
	})
	c.JSON(http.StatusCreated, session)
}

// ProviderSignIn godoc
// @Summary Sign in with Google or Facebook
// @Description Exchanges an access token obtained by the native provider SDK for a session. Creates the account on first use.
// @Tags auth
// @Accept json
// @Produce json
// @Param provider path string true "Provider" Enums(google, facebook)
// @Param data body models.ProviderTokenRequest true "Provider access token"
// @Success 200 {object} models.SessionResponse "Signed in"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 401 {object} ErrorResponse "Provider rejected the token"
// @Failure 404 {object} ErrorResponse "Unknown provider"
// @Failure 422 {object} ErrorResponse "Provider did not share a usable email"
// @Failure 503 {object} ErrorResponse "Provider not configured"
// @Router /auth/providers/{provider} [post]
func (h *AuthHandlers) ProviderSignIn(c *gin.Context) {
	provider, ok := h.provider(c)
	if !ok {
		return
	}

	var req models.ProviderTokenRequest
	if !bindJSON(c, &req) {
		return
	}

	identity, err := h.providers.FetchIdentity(c.Request.Context(), provider, req.AccessToken)
	if err != nil {
		h.providerError(c, provider, err)
		return
	}
	h.completeProviderSignIn(c, provider, identity)
}

// StartProviderSignIn godoc
// @Summary Start a redirect sign-in
// @Description Returns the provider consent URL for browser based sign-in.
// @Tags auth
// @Produce json
// @Param provider path string true "Provider" Enums(google, facebook)
// @Success 200 {object} models.AuthStartResponse "Consent URL"
// @Failure 404 {object} ErrorResponse "Unknown provider"
// @Failure 503 {object} ErrorResponse "Provider not configured"
// @Router /auth/providers/{provider}/start [get]
func (h *AuthHandlers) StartProviderSignIn(c *gin.Context) {
	provider, ok := h.provider(c)
	if !ok {
		return
	}

	start, err := h.providers.AuthURL(c.Request.Context(), provider)
	if err != nil {
		h.providerError(c, provider, err)
		return
	}
	c.JSON(http.StatusOK, start)
}

// ProviderCallback godoc
// @Summary Finish a redirect sign-in
// @Description Consumes the state and authorization code sent back by the provider and returns a session.
// @Tags auth
// @Produce json
// @Param provider path string true "Provider" Enums(google, facebook)
// @Param state query string true "State returned by start"
// @Param code query string true "Authorization code"
// @Success 200 {object} models.SessionResponse "Signed in"
// @Failure 400 {object} ErrorResponse "Cancelled, or invalid state"
// @Failure 404 {object} ErrorResponse "Unknown provider"
// @Router /auth/providers/{provider}/callback [get]
func (h *AuthHandlers) ProviderCallback(c *gin.Context) {
	provider, ok := h.provider(c)
	if !ok {
		return
	}

	if c.Query("error") != "" || c.Query("code") == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: provider.DisplayName() + " sign-in was cancelled."})
		return
	}

	identity, err := h.providers.Exchange(c.Request.Context(), provider, c.Query("state"), c.Query("code"))
	if err != nil {
		h.providerError(c, provider, err)
		return
	}
	h.completeProviderSignIn(c, provider, identity)
}

// SignOut godoc
// @Summary Sign out
// @Description Revokes the session of the bearer token.
// @Tags auth
// @Security BearerAuth
// @Success 204 "Signed out"
// @Failure 401 {object} ErrorResponse "Missing or invalid token"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /auth/sign-out [post]
func (h *AuthHandlers) SignOut(c *gin.Context) {
	sessionID := c.GetString("session_id")
	if sessionID == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Not signed in."})
		return
	}

	if err := h.accounts.SignOut(c.Request.Context(), sessionID); err != nil {
		h.logger.Error("sign out failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Log out failed. Please try again."})
		return
	}

	if err := utils.LogSignOut(c.Request.Context(), utils.GetAuditContextFromGin(c), sessionID); err != nil {
		h.logger.Warn("failed to audit sign out", zap.Error(err))
	}
	c.Status(http.StatusNoContent)
}

func (h *AuthHandlers) provider(c *gin.Context) (account.Provider, bool) {
	provider, err := account.ParseProvider(c.Param("provider"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Unknown sign-in provider."})
		return "", false
	}
	return provider, true
}

func (h *AuthHandlers) completeProviderSignIn(c *gin.Context, provider account.Provider, identity models.Identity) {
	session, created, err := h.accounts.SignInWithIdentity(c.Request.Context(), identity)
	if err != nil {
		h.providerError(c, provider, err)
		return
	}

	method := string(provider)
	if created {
		h.ensureProfile(c, session)
		h.audit(c, session, func(ctx context.Context, auditCtx utils.AuditContext) error {
			return utils.LogSignUp(ctx, auditCtx, method)
		})
	} else {
		h.audit(c, session, func(ctx context.Context, auditCtx utils.AuditContext) error {
			return utils.LogSignIn(ctx, auditCtx, method)
		})
	}
	c.JSON(http.StatusOK, session)
}

func (h *AuthHandlers) providerError(c *gin.Context, provider account.Provider, err error) {
	name := provider.DisplayName()
	switch {
	case errors.Is(err, models.ErrProviderNotConfigured):
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: name + " sign-in is not available."})
	case errors.Is(err, models.ErrInvalidOAuthState):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: name + " sign-in expired. Please start again."})
	case errors.Is(err, models.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: name + " sign-in failed."})
	case errors.Is(err, models.ErrProviderEmailMissing):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: name + " did not share an email address."})
	default:
		h.logger.Error("provider sign in failed", zap.String("provider", string(provider)), zap.Error(err))
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: name + " sign-in failed. Please try again."})
	}
}

func (h *AuthHandlers) ensureProfile(c *gin.Context, session *models.SessionResponse) {
	if h.profiles == nil {
		return
	}
	if err := h.profiles.Ensure(c.Request.Context(), session.UserID, session.Email); err != nil {
		// the profile is created lazily on first read if this fails
		h.logger.Warn("failed to create profile", zap.String("user_id", session.UserID), zap.Error(err))
	}
}

func (h *AuthHandlers) audit(c *gin.Context, session *models.SessionResponse, log func(context.Context, utils.AuditContext) error) {
	auditCtx := utils.GetAuditContextFromGin(c)
	auditCtx.UserID = session.UserID
	auditCtx.Email = session.Email
	if err := log(c.Request.Context(), auditCtx); err != nil {
		h.logger.Warn("failed to write audit log", zap.Error(err))
	}
}
