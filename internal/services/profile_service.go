package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jirani-app/app-jirani/internal/config"
	"github.com/jirani-app/app-jirani/internal/logging"
	"github.com/jirani-app/app-jirani/internal/models"
	"github.com/jirani-app/app-jirani/internal/observability"
	"github.com/jirani-app/app-jirani/internal/profile"
	"github.com/jirani-app/app-jirani/internal/redisclient"
	"github.com/jirani-app/app-jirani/internal/utils"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const profileCacheKeyPrefix = "profile:"

// Mutation derives the next profile from the current one
type Mutation func(profile.Profile) (profile.Profile, error)

// ProfileService handles traveller profile storage
type ProfileService struct {
	profiles *mongo.Collection
	cache    *redisclient.Client
	cacheTTL time.Duration
	logger   *logging.SafeLogger
	now      func() time.Time
}

// NewProfileService creates a new profile service instance
func NewProfileService(database *mongo.Database, cache *redisclient.Client, logger *logging.SafeLogger) *ProfileService {
	return &ProfileService{
		profiles: database.Collection(config.AppConfig.ProfileCollection),
		cache:    cache,
		cacheTTL: config.AppConfig.RedisTTL,
		logger:   logger,
		now:      time.Now,
	}
}

// Now returns the service clock, used to judge document expiry
func (s *ProfileService) Now() time.Time {
	return s.now()
}

func profileCacheKey(userID string) string {
	return profileCacheKeyPrefix + userID
}

// Get returns the profile of userID, served from cache when possible
func (s *ProfileService) Get(ctx context.Context, userID string) (profile.Profile, error) {
	key := profileCacheKey(userID)

	cached, err := s.cache.Get(ctx, key).Result()
	if err == nil {
		var p profile.Profile
		if jsonErr := json.Unmarshal([]byte(cached), &p); jsonErr == nil {
			observability.CacheHits.WithLabelValues("get_profile", "hit").Inc()
			return p, nil
		}
		s.logger.Warn("discarding unreadable cached profile", zap.String("user_id", userID))
	} else if !errors.Is(err, redis.Nil) {
		s.logger.Warn("profile cache read failed", zap.String("user_id", userID), zap.Error(err))
	}
	observability.CacheHits.WithLabelValues("get_profile", "miss").Inc()

	ctx, span, end := utils.TraceDatabaseOperation(ctx, "find_one", config.AppConfig.ProfileCollection)
	defer end()

	var doc models.ProfileDocument
	err = utils.FindOneWithTimeout(ctx, s.profiles, bson.M{"user_id": userID}, &doc, utils.DefaultQueryTimeout)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return profile.Profile{}, models.ErrProfileNotFound
	}
	if err != nil {
		utils.RecordErrorInSpan(span, err, nil)
		observability.DatabaseOperations.WithLabelValues("get_profile", "error").Inc()
		return profile.Profile{}, fmt.Errorf("failed to get profile: %w", err)
	}
	observability.DatabaseOperations.WithLabelValues("get_profile", "success").Inc()

	s.store(ctx, userID, doc.Profile)
	return doc.Profile, nil
}

// Ensure creates an empty profile for userID if none exists, seeding the email
func (s *ProfileService) Ensure(ctx context.Context, userID, email string) error {
	now := s.now().UTC()
	onInsert := bson.M{
		"user_id":    userID,
		"created_at": now,
		"updated_at": now,
	}
	if email != "" {
		onInsert["email"] = email
	}

	_, err := utils.UpsertOneWithTimeout(ctx, s.profiles, bson.M{"user_id": userID},
		bson.M{"$setOnInsert": onInsert}, utils.DefaultQueryTimeout)
	if err != nil {
		observability.DatabaseOperations.WithLabelValues("ensure_profile", "error").Inc()
		return fmt.Errorf("failed to create profile: %w", err)
	}
	observability.DatabaseOperations.WithLabelValues("ensure_profile", "success").Inc()
	return nil
}

// Apply runs mutate against the stored profile and persists the given
// fields of the result. Other fields are left untouched in storage. It
// returns the profiles before and after the change.
func (s *ProfileService) Apply(ctx context.Context, userID string, fields []profile.Field, mutate Mutation) (before, after profile.Profile, err error) {
	defer func() {
		status := "success"
		if err != nil {
			status = "failure"
		}
		for _, f := range fields {
			observability.ProfileUpdates.WithLabelValues(string(f), status).Inc()
		}
	}()

	before, err = s.Get(ctx, userID)
	if err != nil {
		return before, before, err
	}

	after, err = mutate(before)
	if err != nil {
		return before, before, err
	}

	set := bson.M{"updated_at": s.now().UTC()}
	unset := bson.M{}
	for _, f := range fields {
		if v := after.Value(f); v != nil {
			set[string(f)] = v
		} else {
			unset[string(f)] = ""
		}
	}
	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	ctx, span, end := utils.TraceDatabaseOperation(ctx, "update_one", config.AppConfig.ProfileCollection)
	defer end()

	result, err := utils.UpdateOneWithTimeout(ctx, s.profiles, bson.M{"user_id": userID}, update, utils.DefaultQueryTimeout)
	if err != nil {
		utils.RecordErrorInSpan(span, err, nil)
		observability.DatabaseOperations.WithLabelValues("update_profile", "error").Inc()
		return before, before, fmt.Errorf("failed to update profile: %w", err)
	}
	if result.MatchedCount == 0 {
		return before, before, models.ErrProfileNotFound
	}
	observability.DatabaseOperations.WithLabelValues("update_profile", "success").Inc()

	s.invalidate(ctx, userID)
	observability.ProfileCompletion.Observe(float64(profile.ComputeCompletion(after).Percent))

	s.logger.Debug("profile updated",
		zap.String("user_id", userID),
		zap.Int("fields", len(fields)))

	return before, after, nil
}

func (s *ProfileService) store(ctx context.Context, userID string, p profile.Profile) {
	data, err := json.Marshal(p)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, profileCacheKey(userID), data, s.cacheTTL).Err(); err != nil {
		s.logger.Warn("failed to cache profile", zap.String("user_id", userID), zap.Error(err))
	}
}

func (s *ProfileService) invalidate(ctx context.Context, userID string) {
	if err := s.cache.Del(ctx, profileCacheKey(userID)).Err(); err != nil {
		s.logger.Warn("failed to invalidate cached profile", zap.String("user_id", userID), zap.Error(err))
	}
}
