package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jirani-app/app-jirani/internal/config"
	"github.com/jirani-app/app-jirani/internal/handlers"
	"github.com/jirani-app/app-jirani/internal/logging"
	"github.com/jirani-app/app-jirani/internal/middleware"
	"github.com/jirani-app/app-jirani/internal/observability"
	"github.com/jirani-app/app-jirani/internal/services"
	"github.com/jirani-app/app-jirani/internal/utils"
	"github.com/jirani-app/app-jirani/internal/utils/httpclient"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	_ "github.com/jirani-app/app-jirani/docs"
)

// @title           Jirani API
// @version         1.0
// @description     Accounts and traveller profiles for the Jirani and Biblion apps. Covers email and social sign-in, sessions, profile completion and the branded app shell.

// @contact.name   Jirani Support
// @contact.email  support@jirani.app

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// @tag.name auth
// @tag.description Sign-in, sign-up and sessions

// @tag.name profile
// @tag.description Traveller profile and completion

// @tag.name validation
// @tag.description Form validation without side effects

// @tag.name app
// @tag.description Theme and navigation of the configured app

// @tag.name health
// @tag.description Health check operations

func main() {
	// Initialize logger first
	if err := logging.InitLogger(); err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}

	// Load configuration
	if err := config.LoadConfig(); err != nil {
		logging.Logger.Fatal("failed to load config", zap.Error(err))
	}
	cfg := config.AppConfig

	// Initialize observability
	observability.InitTracer()
	defer observability.ShutdownTracer()

	// Initialize database connections
	config.InitMongoDB()
	config.InitRedis()

	if err := handlers.SetupValidation(); err != nil {
		logging.Logger.Fatal("failed to register validators", zap.Error(err))
	}

	utils.InitAuditWorker(
		utils.NewMongoAuditStore(config.MongoDB.Collection(cfg.AuditLogsCollection)),
		cfg.AuditWorkerCount,
		cfg.AuditBufferSize,
	)

	bgCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()

	limiter := services.NewSignInLimiter(cfg.SignInAttemptsPerMinute, logging.Logger)
	limiter.StartCleanup(bgCtx, 5*time.Minute)

	pool := httpclient.GetGlobalPool()
	defer pool.Close()

	accounts := services.NewAccountService(config.MongoDB, config.Redis, logging.Logger)
	profiles := services.NewProfileService(config.MongoDB, config.Redis, logging.Logger)
	oauth := services.NewOAuthService(
		services.DefaultOAuthProviders(cfg),
		cfg.OAuthRedirectBaseURL,
		config.Redis,
		cfg.OAuthStateTTL,
		pool,
		logging.Logger,
	)

	authHandlers := handlers.NewAuthHandlers(logging.Logger, accounts, oauth, profiles, limiter)
	profileHandlers := handlers.NewProfileHandlers(logging.Logger, profiles)
	appHandlers := handlers.NewAppHandlers(cfg.AppVariant)
	healthHandlers := handlers.NewHealthHandlers(map[string]handlers.PingFunc{
		"mongodb": func(ctx context.Context) error {
			return config.MongoDB.Client().Ping(ctx, readpref.Primary())
		},
		"redis": func(ctx context.Context) error {
			return config.Redis.Ping(ctx).Err()
		},
	})

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AddAllowHeaders("Authorization", "X-Request-ID")
	corsConfig.AddExposeHeaders("X-Request-ID")

	// Create router with middleware
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestTiming(),
		middleware.RequestLogger(),
		middleware.RequestTracker(),
		cors.New(corsConfig),
	)

	// Metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	requireSession := middleware.AuthMiddleware(accounts)

	// API v1 routes
	v1 := router.Group("/v1", middleware.AuditMiddleware())
	{
		v1.GET("/health", healthHandlers.HealthCheck)

		auth := v1.Group("/auth")
		{
			auth.POST("/sign-in", authHandlers.SignIn)
			auth.POST("/sign-up", authHandlers.SignUp)
			auth.POST("/sign-out", requireSession, authHandlers.SignOut)
			auth.POST("/providers/:provider", authHandlers.ProviderSignIn)
			auth.GET("/providers/:provider/start", authHandlers.StartProviderSignIn)
			auth.GET("/providers/:provider/callback", authHandlers.ProviderCallback)
		}

		validate := v1.Group("/validate")
		{
			validate.POST("/credentials", handlers.ValidateCredentials)
			validate.POST("/phone", handlers.ValidatePhone)
		}

		profile := v1.Group("/profile", requireSession)
		{
			profile.GET("", profileHandlers.GetProfile)
			profile.GET("/completion", profileHandlers.GetCompletion)
			profile.PUT("/identity", profileHandlers.UpdateIdentity)
			profile.POST("/passport", profileHandlers.AddPassport)
			profile.POST("/national-id", profileHandlers.AddNationalID)
			profile.POST("/payment-method", profileHandlers.AddPaymentMethod)
			profile.POST("/emergency-contact", profileHandlers.AddEmergencyContact)
			profile.POST("/quick-add/:field", profileHandlers.QuickAdd)
		}

		app := v1.Group("/app")
		{
			app.GET("/theme", appHandlers.GetTheme)
			app.GET("/tabs", appHandlers.GetTabs)
			app.GET("/menu", appHandlers.GetMenu)
		}
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Create server with timeouts
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logging.Logger.Info("starting server",
			zap.Int("port", cfg.Port),
			zap.String("environment", cfg.Environment),
			zap.String("app_variant", cfg.AppVariant),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Graceful shutdown
	logging.Logger.Info("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Logger.Error("server forced to shutdown", zap.Error(err))
	}

	// drain pending audit events before the database goes away
	utils.GetAuditWorker().Stop()

	if err := config.MongoDB.Client().Disconnect(ctx); err != nil {
		logging.Logger.Warn("failed to disconnect from MongoDB", zap.Error(err))
	}

	logging.Logger.Info("server exited gracefully")
}
