package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jirani-app/app-jirani/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func TestNewRateLimiter(t *testing.T) {
	rl := NewRateLimiter(10, 100*time.Millisecond, logging.Logger)
	require.NotNil(t, rl)

	tokens, maxTokens := rl.GetStatus()
	assert.Equal(t, 10, tokens)
	assert.Equal(t, 10, maxTokens)
}

func TestRateLimiter_Allow(t *testing.T) {
	clock := newFakeClock()
	rl := newRateLimiter(3, time.Second, logging.Logger, clock.Now)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow(ctx, "test_op"), "request %d", i+1)
	}
	assert.False(t, rl.Allow(ctx, "test_op"))

	clock.Advance(1500 * time.Millisecond)
	assert.True(t, rl.Allow(ctx, "test_op"))
	assert.False(t, rl.Allow(ctx, "test_op"))

	// the half interval carried over completes the next token
	clock.Advance(500 * time.Millisecond)
	assert.True(t, rl.Allow(ctx, "test_op"))
}

func TestRateLimiter_RefillCapsAtMax(t *testing.T) {
	clock := newFakeClock()
	rl := newRateLimiter(2, time.Second, logging.Logger, clock.Now)
	ctx := context.Background()

	rl.Allow(ctx, "test_op")
	clock.Advance(time.Hour)
	rl.Allow(ctx, "test_op")

	tokens, maxTokens := rl.GetStatus()
	assert.Equal(t, 1, tokens)
	assert.Equal(t, 2, maxTokens)
}

func TestSignInLimiter_PerKey(t *testing.T) {
	clock := newFakeClock()
	limiter := NewSignInLimiter(2, logging.Logger)
	limiter.now = clock.Now
	ctx := context.Background()

	assert.True(t, limiter.Allow(ctx, "10.0.0.1|alex@example.com"))
	assert.True(t, limiter.Allow(ctx, "10.0.0.1|alex@example.com"))
	assert.False(t, limiter.Allow(ctx, "10.0.0.1|alex@example.com"))

	// another key has its own bucket
	assert.True(t, limiter.Allow(ctx, "10.0.0.2|alex@example.com"))
	assert.Equal(t, 2, limiter.Size())

	clock.Advance(30 * time.Second)
	assert.True(t, limiter.Allow(ctx, "10.0.0.1|alex@example.com"))
}

func TestSignInLimiter_CleanupOldEntries(t *testing.T) {
	clock := newFakeClock()
	limiter := NewSignInLimiter(5, logging.Logger)
	limiter.now = clock.Now
	ctx := context.Background()

	limiter.Allow(ctx, "stale")
	clock.Advance(time.Hour)
	limiter.Allow(ctx, "fresh")

	limiter.CleanupOldEntries(10 * time.Minute)
	assert.Equal(t, 1, limiter.Size())

	_, ok := limiter.buckets.Load("fresh")
	assert.True(t, ok)
}

func TestSignInLimiter_MinimumOneAttempt(t *testing.T) {
	limiter := NewSignInLimiter(0, logging.Logger)
	assert.True(t, limiter.Allow(context.Background(), "k"))
	assert.False(t, limiter.Allow(context.Background(), "k"))
}
