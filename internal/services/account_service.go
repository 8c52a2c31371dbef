package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jirani-app/app-jirani/internal/config"
	"github.com/jirani-app/app-jirani/internal/logging"
	"github.com/jirani-app/app-jirani/internal/models"
	"github.com/jirani-app/app-jirani/internal/observability"
	"github.com/jirani-app/app-jirani/internal/redisclient"
	"github.com/jirani-app/app-jirani/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const sessionKeyPrefix = "session:"

// MaxPasswordBytes is the longest password bcrypt can hash
const MaxPasswordBytes = 72

// AccountService handles accounts and the sessions issued for them
type AccountService struct {
	users    *mongo.Collection
	sessions *redisclient.Client
	secret   []byte
	issuer   string
	ttl      time.Duration
	cost     int
	logger   *logging.SafeLogger
	now      func() time.Time
}

// NewAccountService creates a new account service instance from the loaded configuration
func NewAccountService(database *mongo.Database, redis *redisclient.Client, logger *logging.SafeLogger) *AccountService {
	cost := config.AppConfig.BcryptCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &AccountService{
		users:    database.Collection(config.AppConfig.UserCollection),
		sessions: redis,
		secret:   []byte(config.AppConfig.JWTSecret),
		issuer:   config.AppConfig.JWTIssuer,
		ttl:      config.AppConfig.SessionTTL,
		cost:     cost,
		logger:   logger,
		now:      time.Now,
	}
}

// NormalizeEmail lower-cases and trims an email address before lookup or storage
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SignUp creates a password account and opens a session for it
func (s *AccountService) SignUp(ctx context.Context, email, password string) (*models.SessionResponse, error) {
	ctx, span, end := utils.TraceOperation(ctx, "account.sign_up", nil)
	defer end()

	if len(password) > MaxPasswordBytes {
		return nil, models.ErrPasswordTooLong
	}

	email = NormalizeEmail(email)

	var existing models.User
	err := utils.FindOneWithTimeout(ctx, s.users, bson.M{"email": email}, &existing, utils.DefaultQueryTimeout)
	if err == nil {
		return nil, models.ErrEmailTaken
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		utils.RecordErrorInSpan(span, err, nil)
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now().UTC()
	user := models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
		LastSignInAt: &now,
	}
	if err := s.insertUser(ctx, user); err != nil {
		utils.RecordErrorInSpan(span, err, nil)
		return nil, err
	}

	s.logger.Info("account created",
		zap.String("user_id", user.ID),
		zap.String("email", observability.MaskEmail(email)))

	return s.issueSession(ctx, user, "")
}

// SignIn checks email and password and opens a session. Unknown emails and
// wrong passwords are indistinguishable to the caller.
func (s *AccountService) SignIn(ctx context.Context, email, password string) (*models.SessionResponse, error) {
	ctx, span, end := utils.TraceOperation(ctx, "account.sign_in", nil)
	defer end()

	email = NormalizeEmail(email)

	var user models.User
	err := utils.FindOneWithTimeout(ctx, s.users, bson.M{"email": email}, &user, utils.DefaultQueryTimeout)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrInvalidCredentials
	}
	if err != nil {
		utils.RecordErrorInSpan(span, err, nil)
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !user.HasPassword() {
		return nil, models.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, models.ErrInvalidCredentials
	}

	s.touchSignIn(ctx, user.ID)
	return s.issueSession(ctx, user, "")
}

// SignInWithIdentity signs in the user linked to a provider identity. An
// existing account with the same email gets the identity linked when the
// provider verified that email; otherwise a new account is created. created
// reports the latter.
func (s *AccountService) SignInWithIdentity(ctx context.Context, identity models.Identity) (session *models.SessionResponse, created bool, err error) {
	ctx, span, end := utils.TraceOperation(ctx, "account.sign_in_with_identity", map[string]interface{}{
		"auth.provider": identity.Provider,
	})
	defer end()
	defer func() {
		status := "success"
		if err != nil {
			status = "failure"
		}
		observability.ProviderSignIns.WithLabelValues(identity.Provider, status).Inc()
	}()

	identity.Email = NormalizeEmail(identity.Email)

	var user models.User
	err = utils.FindOneWithTimeout(ctx, s.users, bson.M{
		"identities.provider": identity.Provider,
		"identities.subject":  identity.Subject,
	}, &user, utils.DefaultQueryTimeout)
	if err == nil {
		s.touchSignIn(ctx, user.ID)
		session, err = s.issueSession(ctx, user, identity.Provider)
		return session, false, err
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		utils.RecordErrorInSpan(span, err, nil)
		return nil, false, fmt.Errorf("failed to look up identity: %w", err)
	}

	if identity.Email == "" {
		return nil, false, models.ErrProviderEmailMissing
	}

	err = utils.FindOneWithTimeout(ctx, s.users, bson.M{"email": identity.Email}, &user, utils.DefaultQueryTimeout)
	switch {
	case err == nil:
		if !identity.EmailVerified {
			return nil, false, fmt.Errorf("%w: %s email is not verified", models.ErrProviderEmailMissing, identity.Provider)
		}
		if err := s.linkIdentity(ctx, user.ID, identity); err != nil {
			return nil, false, err
		}
		user.Identities = append(user.Identities, identity)
		s.logger.Info("identity linked to existing account",
			zap.String("user_id", user.ID),
			zap.String("provider", identity.Provider))
	case errors.Is(err, mongo.ErrNoDocuments):
		now := s.now().UTC()
		user = models.User{
			ID:           uuid.NewString(),
			Email:        identity.Email,
			Identities:   []models.Identity{identity},
			CreatedAt:    now,
			UpdatedAt:    now,
			LastSignInAt: &now,
		}
		if err := s.insertUser(ctx, user); err != nil {
			return nil, false, err
		}
		created = true
		s.logger.Info("account created from provider identity",
			zap.String("user_id", user.ID),
			zap.String("provider", identity.Provider))
	default:
		utils.RecordErrorInSpan(span, err, nil)
		return nil, false, fmt.Errorf("failed to look up user: %w", err)
	}

	session, err = s.issueSession(ctx, user, identity.Provider)
	return session, created, err
}

// SignOut revokes the session with the given JWT ID
func (s *AccountService) SignOut(ctx context.Context, sessionID string) error {
	if err := s.sessions.Del(ctx, sessionKeyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	s.logger.Debug("session revoked", zap.String("session_id", sessionID))
	return nil
}

// VerifySession validates a session token and checks it has not been revoked
func (s *AccountService) VerifySession(ctx context.Context, token string) (*models.SessionClaims, error) {
	claims, err := s.parseToken(token)
	if err != nil {
		return nil, err
	}

	n, err := s.sessions.Exists(ctx, sessionKeyPrefix+claims.ID).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to check session: %w", err)
	}
	if n == 0 {
		return nil, models.ErrSessionRevoked
	}
	return claims, nil
}

// GetUser returns the account with the given ID
func (s *AccountService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	err := utils.FindOneWithTimeout(ctx, s.users, bson.M{"_id": userID}, &user, utils.DefaultQueryTimeout)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (s *AccountService) insertUser(ctx context.Context, user models.User) error {
	_, err := utils.InsertOneWithTimeout(ctx, s.users, user, utils.DefaultQueryTimeout)
	if mongo.IsDuplicateKeyError(err) {
		observability.DatabaseOperations.WithLabelValues("insert_user", "conflict").Inc()
		return models.ErrEmailTaken
	}
	if err != nil {
		observability.DatabaseOperations.WithLabelValues("insert_user", "error").Inc()
		return fmt.Errorf("failed to create user: %w", err)
	}
	observability.DatabaseOperations.WithLabelValues("insert_user", "success").Inc()
	return nil
}

func (s *AccountService) linkIdentity(ctx context.Context, userID string, identity models.Identity) error {
	_, err := utils.UpdateOneWithTimeout(ctx, s.users, bson.M{"_id": userID}, bson.M{
		"$addToSet": bson.M{"identities": identity},
		"$set":      bson.M{"updated_at": s.now().UTC(), "last_sign_in_at": s.now().UTC()},
	}, utils.DefaultQueryTimeout)
	if err != nil {
		observability.DatabaseOperations.WithLabelValues("link_identity", "error").Inc()
		return fmt.Errorf("failed to link identity: %w", err)
	}
	observability.DatabaseOperations.WithLabelValues("link_identity", "success").Inc()
	return nil
}

// touchSignIn records the sign-in time. Failures only get logged.
func (s *AccountService) touchSignIn(ctx context.Context, userID string) {
	_, err := utils.UpdateOneWithTimeout(ctx, s.users, bson.M{"_id": userID},
		bson.M{"$set": bson.M{"last_sign_in_at": s.now().UTC()}}, utils.DefaultQueryTimeout)
	if err != nil {
		s.logger.Warn("failed to record sign-in time", zap.String("user_id", userID), zap.Error(err))
	}
}

func (s *AccountService) issueSession(ctx context.Context, user models.User, provider string) (*models.SessionResponse, error) {
	now := s.now()
	expiresAt := now.Add(s.ttl)

	claims := models.SessionClaims{
		Email:    user.Email,
		Provider: provider,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := s.signToken(claims)
	if err != nil {
		return nil, err
	}

	if err := s.sessions.Set(ctx, sessionKeyPrefix+claims.ID, user.ID, s.ttl).Err(); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	return &models.SessionResponse{
		Token:     token,
		UserID:    user.ID,
		Email:     user.Email,
		ExpiresAt: expiresAt.UTC().Format(time.RFC3339),
	}, nil
}

func (s *AccountService) signToken(claims models.SessionClaims) (string, error) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return token, nil
}

func (s *AccountService) parseToken(token string) (*models.SessionClaims, error) {
	claims := &models.SessionClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidToken, err)
	}
	if claims.ID == "" || claims.Subject == "" {
		return nil, models.ErrInvalidToken
	}
	return claims, nil
}
