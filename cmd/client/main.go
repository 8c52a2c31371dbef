package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jirani-app/app-jirani/internal/account"
	"github.com/jirani-app/app-jirani/internal/config"
	"github.com/jirani-app/app-jirani/internal/form"
	"github.com/jirani-app/app-jirani/internal/logging"
	"github.com/jirani-app/app-jirani/internal/navigation"
	"github.com/jirani-app/app-jirani/internal/screens"
	"github.com/jirani-app/app-jirani/internal/theme"
	"github.com/jirani-app/app-jirani/internal/utils/httpclient"
	"go.uber.org/zap"
)

// Drives the email sign-in or sign-up screen headlessly against a running
// API, or against the stub backend when no API URL is given.
func main() {
	apiURL := flag.String("api", os.Getenv("API_BASE_URL"), "base URL of the API; empty uses the stub backend")
	email := flag.String("email", "", "account email")
	password := flag.String("password", "", "account password")
	signUp := flag.Bool("sign-up", false, "create the account instead of signing in")
	flag.Parse()

	if err := logging.InitLogger(); err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer func() { _ = logging.Logger.Sync() }()

	if err := config.LoadConfig(); err != nil {
		logging.Logger.Fatal("failed to load config", zap.Error(err))
	}

	var client account.Client = account.NewStubClient()
	if *apiURL != "" {
		client = account.NewHTTPClient(*apiURL, httpclient.GetGlobalPool(), nil)
	}

	router := navigation.NewStack(navigation.Splash)
	deps := screens.Deps{
		Client:  client,
		Router:  router,
		Variant: theme.VariantFor(config.AppConfig.AppVariant),
		Timeout: config.AppConfig.SubmitTimeout,
		Logger:  logging.Logger,
	}

	screens.NewSplash(deps).GetStarted()

	chooser := screens.NewSignIn(deps)

	var f *form.Form
	if *signUp {
		chooser.CreateAccount()
		f = screens.NewSignUp(deps).Form
	} else {
		chooser.SignInWithEmail()
		f = screens.NewEmailSignIn(deps).Form
	}
	f.SetEmail(*email)
	f.SetPassword(*password)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	outcome := f.Submit(ctx)

	result := struct {
		Outcome string           `json:"outcome"`
		Route   navigation.Route `json:"route"`
		Errors  form.FieldErrors `json:"errors,omitempty"`
		Notice  *form.Notice     `json:"notice,omitempty"`
		Session *account.Session `json:"session,omitempty"`
	}{
		Outcome: outcome.String(),
		Route:   router.Current(),
		Errors:  f.Errors(),
		Notice:  f.Notice(),
		Session: f.Session(),
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		logging.Logger.Fatal("failed to write result", zap.Error(err))
	}

	if outcome != form.OutcomeSucceeded {
		os.Exit(1)
	}
}
