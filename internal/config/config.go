package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration values
type Config struct {
	// Server configuration
	Port        int    `json:"port"`
	Environment string `json:"environment"`
	// AppVariant selects the branded app served by this instance (jirani or biblion)
	AppVariant string `json:"app_variant"`

	// MongoDB configuration
	MongoURI      string `json:"mongo_uri"`
	MongoDatabase string `json:"mongo_database"`

	// Redis configuration
	RedisURI      string        `json:"redis_uri"`
	RedisPassword string        `json:"redis_password"`
	RedisDB       int           `json:"redis_db"`
	RedisTTL      time.Duration `json:"redis_ttl"`

	// Collection names
	UserCollection    string `json:"mongo_user_collection"`
	ProfileCollection string `json:"mongo_profile_collection"`

	// Session configuration
	JWTSecret  string        `json:"-"`
	JWTIssuer  string        `json:"jwt_issuer"`
	SessionTTL time.Duration `json:"session_ttl"`
	BcryptCost int           `json:"bcrypt_cost"`

	// SignInAttemptsPerMinute caps credential attempts per client and email
	SignInAttemptsPerMinute int `json:"sign_in_attempts_per_minute"`

	// OAuth providers
	GoogleClientID       string        `json:"google_client_id"`
	GoogleClientSecret   string        `json:"-"`
	FacebookClientID     string        `json:"facebook_client_id"`
	FacebookClientSecret string        `json:"-"`
	OAuthRedirectBaseURL string        `json:"oauth_redirect_base_url"`
	OAuthStateTTL        time.Duration `json:"oauth_state_ttl"`

	// Form submission configuration
	SubmitTimeout time.Duration `json:"submit_timeout"`

	// Audit configuration
	AuditLogsCollection string `json:"mongo_audit_logs_collection"`
	AuditLogsEnabled    bool   `json:"audit_logs_enabled"`
	AuditWorkerCount    int    `json:"audit_worker_count"`
	AuditBufferSize     int    `json:"audit_buffer_size"`

	// Tracing configuration
	TracingEnabled  bool   `json:"tracing_enabled"`
	TracingEndpoint string `json:"tracing_endpoint"`
}

var (
	AppConfig *Config
)

// LoadConfig loads configuration from environment variables
func LoadConfig() error {
	port, err := strconv.Atoi(getEnvOrDefault("PORT", "8080"))
	if err != nil {
		return fmt.Errorf("invalid PORT: %w", err)
	}

	redisDB, err := strconv.Atoi(getEnvOrDefault("REDIS_DB", "0"))
	if err != nil {
		return fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	redisTTL, err := time.ParseDuration(getEnvOrDefault("REDIS_TTL", "60m"))
	if err != nil {
		return fmt.Errorf("invalid REDIS_TTL: %w", err)
	}

	sessionTTL, err := time.ParseDuration(getEnvOrDefault("SESSION_TTL", "24h"))
	if err != nil {
		return fmt.Errorf("invalid SESSION_TTL: %w", err)
	}

	oauthStateTTL, err := time.ParseDuration(getEnvOrDefault("OAUTH_STATE_TTL", "10m"))
	if err != nil {
		return fmt.Errorf("invalid OAUTH_STATE_TTL: %w", err)
	}

	submitTimeout, err := time.ParseDuration(getEnvOrDefault("SUBMIT_TIMEOUT", "30s"))
	if err != nil {
		return fmt.Errorf("invalid SUBMIT_TIMEOUT: %w", err)
	}

	bcryptCost, err := strconv.Atoi(getEnvOrDefault("BCRYPT_COST", "10"))
	if err != nil {
		return fmt.Errorf("invalid BCRYPT_COST: %w", err)
	}

	signInAttempts, err := strconv.Atoi(getEnvOrDefault("SIGN_IN_ATTEMPTS_PER_MINUTE", "10"))
	if err != nil {
		return fmt.Errorf("invalid SIGN_IN_ATTEMPTS_PER_MINUTE: %w", err)
	}

	tracingEnabled, err := strconv.ParseBool(getEnvOrDefault("TRACING_ENABLED", "false"))
	if err != nil {
		return fmt.Errorf("invalid TRACING_ENABLED: %w", err)
	}

	auditEnabled, err := strconv.ParseBool(getEnvOrDefault("AUDIT_LOGS_ENABLED", "true"))
	if err != nil {
		return fmt.Errorf("invalid AUDIT_LOGS_ENABLED: %w", err)
	}

	auditWorkers, err := strconv.Atoi(getEnvOrDefault("AUDIT_WORKER_COUNT", "2"))
	if err != nil {
		return fmt.Errorf("invalid AUDIT_WORKER_COUNT: %w", err)
	}

	auditBuffer, err := strconv.Atoi(getEnvOrDefault("AUDIT_BUFFER_SIZE", "1000"))
	if err != nil {
		return fmt.Errorf("invalid AUDIT_BUFFER_SIZE: %w", err)
	}

	environment := getEnvOrDefault("ENVIRONMENT", "development")

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		if environment == "production" {
			return fmt.Errorf("JWT_SECRET environment variable is required")
		}
		jwtSecret = "development-secret"
	}

	variant := getEnvOrDefault("APP_VARIANT", "jirani")
	if variant != "jirani" && variant != "biblion" {
		return fmt.Errorf("invalid APP_VARIANT: %q", variant)
	}

	AppConfig = &Config{
		// Server configuration
		Port:        port,
		Environment: environment,
		AppVariant:  variant,

		// MongoDB configuration
		MongoURI:      getEnvOrDefault("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnvOrDefault("MONGODB_DATABASE", "jirani"),

		// Redis configuration
		RedisURI:      getEnvOrDefault("REDIS_URI", "localhost:6379"),
		RedisPassword: getEnvOrDefault("REDIS_PASSWORD", ""),
		RedisDB:       redisDB,
		RedisTTL:      redisTTL,

		// Collection names
		UserCollection:    getEnvOrDefault("MONGODB_USER_COLLECTION", "users"),
		ProfileCollection: getEnvOrDefault("MONGODB_PROFILE_COLLECTION", "profiles"),

		// Session configuration
		JWTSecret:  jwtSecret,
		JWTIssuer:  getEnvOrDefault("JWT_ISSUER", "app-jirani"),
		SessionTTL: sessionTTL,
		BcryptCost: bcryptCost,

		SignInAttemptsPerMinute: signInAttempts,

		// OAuth providers
		GoogleClientID:       os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret:   os.Getenv("GOOGLE_CLIENT_SECRET"),
		FacebookClientID:     os.Getenv("FACEBOOK_CLIENT_ID"),
		FacebookClientSecret: os.Getenv("FACEBOOK_CLIENT_SECRET"),
		OAuthRedirectBaseURL: getEnvOrDefault("OAUTH_REDIRECT_BASE_URL", "http://localhost:8080/v1/auth/providers"),
		OAuthStateTTL:        oauthStateTTL,

		SubmitTimeout: submitTimeout,

		// Audit configuration
		AuditLogsCollection: getEnvOrDefault("MONGODB_AUDIT_LOGS_COLLECTION", "audit_logs"),
		AuditLogsEnabled:    auditEnabled,
		AuditWorkerCount:    auditWorkers,
		AuditBufferSize:     auditBuffer,

		// Tracing configuration
		TracingEnabled:  tracingEnabled,
		TracingEndpoint: getEnvOrDefault("TRACING_ENDPOINT", "localhost:4317"),
	}

	return nil
}

// getEnvOrDefault returns environment variable value or default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
