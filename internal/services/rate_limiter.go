package services

import (
	"context"
	"sync"
	"time"

	"github.com/jirani-app/app-jirani/internal/logging"
	"go.uber.org/zap"
)

// RateLimiter implements a token bucket rate limiter
type RateLimiter struct {
	tokens     int
	maxTokens  int
	refillRate time.Duration
	lastRefill time.Time
	mutex      sync.Mutex
	logger     *logging.SafeLogger
	now        func() time.Time
}

// NewRateLimiter creates a new token bucket rate limiter
func NewRateLimiter(maxTokens int, refillRate time.Duration, logger *logging.SafeLogger) *RateLimiter {
	return newRateLimiter(maxTokens, refillRate, logger, time.Now)
}

func newRateLimiter(maxTokens int, refillRate time.Duration, logger *logging.SafeLogger, now func() time.Time) *RateLimiter {
	return &RateLimiter{
		tokens:     maxTokens,
		maxTokens:  maxTokens,
		refillRate: refillRate,
		lastRefill: now(),
		logger:     logger,
		now:        now,
	}
}

// Allow checks if a request should be allowed based on rate limiting
func (rl *RateLimiter) Allow(ctx context.Context, operation string) bool {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	now := rl.now()
	tokensToAdd := int(now.Sub(rl.lastRefill) / rl.refillRate)
	if tokensToAdd > 0 {
		rl.tokens += tokensToAdd
		if rl.tokens > rl.maxTokens {
			rl.tokens = rl.maxTokens
		}
		// carry the remainder so partial intervals are not lost
		rl.lastRefill = rl.lastRefill.Add(time.Duration(tokensToAdd) * rl.refillRate)
	}

	if rl.tokens > 0 {
		rl.tokens--
		return true
	}

	rl.logger.Warn("rate limiter rejected request",
		zap.String("operation", operation),
		zap.Int("max_tokens", rl.maxTokens))
	return false
}

// GetStatus returns the current and maximum token counts
func (rl *RateLimiter) GetStatus() (int, int) {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()
	return rl.tokens, rl.maxTokens
}

// idle reports whether the bucket is full and untouched since cutoff
func (rl *RateLimiter) idle(cutoff time.Time) bool {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()
	return rl.lastRefill.Before(cutoff)
}

// SignInLimiter throttles credential attempts per client key
type SignInLimiter struct {
	buckets     sync.Map // map[string]*RateLimiter
	maxAttempts int
	refillRate  time.Duration
	logger      *logging.SafeLogger
	now         func() time.Time
}

// NewSignInLimiter allows maxPerMinute attempts per key, refilled evenly over a minute
func NewSignInLimiter(maxPerMinute int, logger *logging.SafeLogger) *SignInLimiter {
	if maxPerMinute < 1 {
		maxPerMinute = 1
	}
	return &SignInLimiter{
		maxAttempts: maxPerMinute,
		refillRate:  time.Minute / time.Duration(maxPerMinute),
		logger:      logger,
		now:         time.Now,
	}
}

// Allow consumes one attempt for key
func (m *SignInLimiter) Allow(ctx context.Context, key string) bool {
	bucket, ok := m.buckets.Load(key)
	if !ok {
		bucket, _ = m.buckets.LoadOrStore(key, newRateLimiter(m.maxAttempts, m.refillRate, m.logger, m.now))
	}
	return bucket.(*RateLimiter).Allow(ctx, "sign_in")
}

// CleanupOldEntries drops buckets untouched for longer than olderThan
func (m *SignInLimiter) CleanupOldEntries(olderThan time.Duration) {
	cutoff := m.now().Add(-olderThan)
	m.buckets.Range(func(key, value interface{}) bool {
		if value.(*RateLimiter).idle(cutoff) {
			m.buckets.Delete(key)
		}
		return true
	})
}

// Size returns the number of tracked keys
func (m *SignInLimiter) Size() int {
	count := 0
	m.buckets.Range(func(key, value interface{}) bool {
		count++
		return true
	})
	return count
}

// StartCleanup removes idle buckets every interval until ctx is done
func (m *SignInLimiter) StartCleanup(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.CleanupOldEntries(interval)
			}
		}
	}()
}
