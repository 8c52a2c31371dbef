package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jirani-app/app-jirani/internal/config"
	"github.com/jirani-app/app-jirani/internal/logging"
	"github.com/jirani-app/app-jirani/internal/models"
	"github.com/jirani-app/app-jirani/internal/profile"
	"github.com/jirani-app/app-jirani/internal/services"
)

// Creates the demo account used in screenshots and QA, with the seeded
// identity filled in and every document left missing.
func main() {
	fmt.Println("🌱 Seeding demo account...")

	if err := logging.InitLogger(); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	if err := config.LoadConfig(); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	config.InitMongoDB()
	config.InitRedis()
	if config.MongoDB == nil || config.Redis == nil {
		log.Fatal("Failed to initialize databases")
	}

	email := os.Getenv("DEMO_EMAIL")
	if email == "" {
		email = "alex@example.com"
	}
	password := os.Getenv("DEMO_PASSWORD")
	if password == "" {
		password = "jirani-demo"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	accounts := services.NewAccountService(config.MongoDB, config.Redis, logging.Logger)
	profiles := services.NewProfileService(config.MongoDB, config.Redis, logging.Logger)

	session, err := accounts.SignUp(ctx, email, password)
	if errors.Is(err, models.ErrEmailTaken) {
		fmt.Printf("⚠️  %s already exists, signing in instead\n", email)
		session, err = accounts.SignIn(ctx, email, password)
	}
	if err != nil {
		log.Fatalf("Failed to create demo account: %v", err)
	}

	if err := profiles.Ensure(ctx, session.UserID, session.Email); err != nil {
		log.Fatalf("Failed to create demo profile: %v", err)
	}

	seed := profile.MockProfile()
	fields := []profile.Field{profile.FieldName, profile.FieldEmail, profile.FieldPhone}
	_, after, err := profiles.Apply(ctx, session.UserID, fields, func(p profile.Profile) (profile.Profile, error) {
		id := seed.Identity()
		id.Email = session.Email
		return profile.UpdateIdentity(p, id)
	})
	if err != nil {
		log.Fatalf("Failed to seed demo profile: %v", err)
	}

	completion := profile.ComputeCompletion(after)
	fmt.Printf("✅ Demo account %s (%s)\n", session.Email, session.UserID)
	for _, row := range profile.Rows(after) {
		fmt.Printf("  %-8s %-18s %s\n", row.Status, row.Title, row.Subtitle)
	}
	fmt.Printf("\n🎉 Profile %d%% complete (%d of %d)\n", completion.Percent, completion.Done, completion.Total)
}
