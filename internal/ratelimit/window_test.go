package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestLimiter(max int, window time.Duration) (*WindowLimiter, *fakeClock) {
	clock := &fakeClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	limiter := NewWindowLimiter(max, window)
	limiter.now = clock.Now
	return limiter, clock
}

func TestWindowLimiter_Check_AllowsUpToMax(t *testing.T) {
	limiter, _ := newTestLimiter(5, time.Minute)

	for i := 0; i < 5; i++ {
		allowed, wait := limiter.Check("jobs")
		assert.True(t, allowed)
		assert.Equal(t, time.Duration(0), wait)
	}

	allowed, wait := limiter.Check("jobs")
	assert.False(t, allowed)
	assert.Equal(t, time.Minute, wait)
}

func TestWindowLimiter_Check_SlidingWindow(t *testing.T) {
	limiter, clock := newTestLimiter(2, time.Minute)

	limiter.Check("jobs")
	clock.Advance(20 * time.Second)
	limiter.Check("jobs")

	allowed, wait := limiter.Check("jobs")
	assert.False(t, allowed)
	assert.Equal(t, 40*time.Second, wait)

	clock.Advance(40 * time.Second)
	allowed, _ = limiter.Check("jobs")
	assert.True(t, allowed, "oldest event left the window")

	allowed, wait = limiter.Check("jobs")
	assert.False(t, allowed)
	assert.Equal(t, 20*time.Second, wait)
}

func TestWindowLimiter_Check_RejectedDoesNotConsume(t *testing.T) {
	limiter, clock := newTestLimiter(1, time.Minute)

	limiter.Check("jobs")
	for i := 0; i < 10; i++ {
		allowed, _ := limiter.Check("jobs")
		assert.False(t, allowed)
	}

	clock.Advance(time.Minute + time.Nanosecond)
	allowed, _ := limiter.Check("jobs")
	assert.True(t, allowed)
}

func TestWindowLimiter_Check_KeysAreIndependent(t *testing.T) {
	limiter, _ := newTestLimiter(1, time.Minute)

	allowed, _ := limiter.Check("client1")
	assert.True(t, allowed)
	allowed, _ = limiter.Check("client2")
	assert.True(t, allowed)
	allowed, _ = limiter.Check("client1")
	assert.False(t, allowed)
}

func TestWindowLimiter_Unlimited(t *testing.T) {
	limiter := NewWindowLimiter(0, time.Minute)
	for i := 0; i < 100; i++ {
		allowed, _ := limiter.Check("jobs")
		assert.True(t, allowed)
	}
}

func TestWindowLimiter_Reset(t *testing.T) {
	limiter, _ := newTestLimiter(1, time.Minute)

	limiter.Check("client1")
	limiter.Reset("client1")

	allowed, _ := limiter.Check("client1")
	assert.True(t, allowed)
}

func TestWindowLimiter_Wait(t *testing.T) {
	limiter := NewWindowLimiter(1, 50*time.Millisecond)

	require.NoError(t, limiter.Wait(context.Background(), "jobs"))
	require.NoError(t, limiter.Wait(context.Background(), "jobs"), "waiting does not take the slot")
	allowed, _ := limiter.Check("jobs")
	require.True(t, allowed)

	start := time.Now()
	require.NoError(t, limiter.Wait(context.Background(), "jobs"))
	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
}

func TestWindowLimiter_Until(t *testing.T) {
	limiter, clock := newTestLimiter(2, time.Minute)

	assert.Zero(t, limiter.Until("jobs"))
	limiter.Check("jobs")
	clock.Advance(10 * time.Second)
	limiter.Check("jobs")
	assert.Equal(t, 50*time.Second, limiter.Until("jobs"))

	clock.Advance(50 * time.Second)
	assert.Zero(t, limiter.Until("jobs"))
}

func TestWindowLimiter_Wait_ContextCancelled(t *testing.T) {
	limiter := NewWindowLimiter(1, time.Hour)
	limiter.Check("jobs")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := limiter.Wait(ctx, "jobs")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestWindowLimiter_Sweep(t *testing.T) {
	limiter, clock := newTestLimiter(3, time.Minute)

	limiter.Check("stale")
	clock.Advance(30 * time.Second)
	limiter.Check("fresh")
	clock.Advance(45 * time.Second)

	limiter.sweep()

	limiter.mu.Lock()
	_, staleExists := limiter.events["stale"]
	_, freshExists := limiter.events["fresh"]
	limiter.mu.Unlock()

	assert.False(t, staleExists)
	assert.True(t, freshExists)
}

func TestWindowLimiter_ConcurrentAccess(t *testing.T) {
	limiter := NewWindowLimiter(50, time.Minute)

	var mu sync.Mutex
	admitted := 0
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				if ok, _ := limiter.Check("concurrent"); ok {
					mu.Lock()
					admitted++
					mu.Unlock()
				}
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, admitted)
}
