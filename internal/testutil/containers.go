// Package testutil starts the MongoDB and Redis containers used by
// integration tests.
package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jirani-app/app-jirani/internal/config"
	"github.com/jirani-app/app-jirani/internal/redisclient"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"github.com/testcontainers/testcontainers-go/modules/redis"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TestContainers holds references to test containers
type TestContainers struct {
	MongoContainer *mongodb.MongoDBContainer
	RedisContainer *redis.RedisContainer
	MongoDB        *mongo.Database
	Redis          *redisclient.Client
	Cleanup        func()
}

// SetupTestContainers starts MongoDB and Redis containers for testing. The
// test is skipped when no container runtime is available.
func SetupTestContainers(t *testing.T) *TestContainers {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping container tests in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()

	mongoContainer, err := mongodb.Run(ctx, "mongo:7.0")
	require.NoError(t, err, "Failed to start MongoDB container")

	redisContainer, err := redis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err, "Failed to start Redis container")

	mongoURI, err := mongoContainer.ConnectionString(ctx)
	require.NoError(t, err, "Failed to get MongoDB connection string")

	redisURI, err := redisContainer.ConnectionString(ctx)
	require.NoError(t, err, "Failed to get Redis connection string")

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	require.NoError(t, err, "Failed to connect to MongoDB")
	require.NoError(t, mongoClient.Ping(ctx, nil), "Failed to ping MongoDB")

	redisOpts, err := goredis.ParseURL(redisURI)
	require.NoError(t, err, "Failed to parse Redis connection string")
	rawRedis := goredis.NewClient(redisOpts)
	redisClient := redisclient.NewClient(rawRedis)
	require.NoError(t, redisClient.Ping(ctx).Err(), "Failed to ping Redis")

	database := mongoClient.Database("jirani_test")

	config.AppConfig = &config.Config{
		Environment:         "test",
		AppVariant:          "jirani",
		MongoURI:            mongoURI,
		MongoDatabase:       "jirani_test",
		RedisURI:            redisOpts.Addr,
		RedisTTL:            time.Minute,
		UserCollection:      "users",
		ProfileCollection:   "profiles",
		AuditLogsCollection: "audit_logs",
		JWTSecret:           "test-secret",
		JWTIssuer:           "app-jirani-test",
		SessionTTL:          time.Hour,
		BcryptCost:          4,
		OAuthStateTTL:       time.Minute,
		SubmitTimeout:       5 * time.Second,
	}
	config.MongoDB = database
	config.Redis = redisClient

	require.NoError(t, config.EnsureIndexes(ctx, database), "Failed to create indexes")

	cleanup := func() {
		ctx := context.Background()
		_ = rawRedis.Close()
		_ = mongoClient.Disconnect(ctx)
		_ = mongoContainer.Terminate(ctx)
		_ = redisContainer.Terminate(ctx)
	}

	return &TestContainers{
		MongoContainer: mongoContainer,
		RedisContainer: redisContainer,
		MongoDB:        database,
		Redis:          redisClient,
		Cleanup:        cleanup,
	}
}

// CleanupDatabase empties every collection in the test database, keeping indexes
func CleanupDatabase(t *testing.T, db *mongo.Database) {
	t.Helper()
	ctx := context.Background()
	collections, err := db.ListCollectionNames(ctx, bson.M{})
	require.NoError(t, err, "Failed to list collections")

	for _, collection := range collections {
		_, err := db.Collection(collection).DeleteMany(ctx, bson.M{})
		require.NoError(t, err, fmt.Sprintf("Failed to clean collection %s", collection))
	}
}
