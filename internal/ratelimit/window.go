package ratelimit

import (
	"context"
	"sync"
	"time"
)

// WindowLimiter allows at most max events per key within any rolling window.
type WindowLimiter struct {
	mu     sync.Mutex
	events map[string][]time.Time
	max    int
	window time.Duration
	now    func() time.Time
}

// NewWindowLimiter returns a limiter. A max of zero or less disables limiting.
func NewWindowLimiter(max int, window time.Duration) *WindowLimiter {
	return &WindowLimiter{
		events: make(map[string][]time.Time),
		max:    max,
		window: window,
		now:    time.Now,
	}
}

// Check records an event for key when the window has room. Otherwise it
// returns false and how long until the oldest event leaves the window.
func (l *WindowLimiter) Check(key string) (bool, time.Duration) {
	if l.max <= 0 {
		return true, 0
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	recent := l.prune(l.events[key], now)

	if len(recent) >= l.max {
		l.events[key] = recent
		return false, recent[0].Add(l.window).Sub(now)
	}

	l.events[key] = append(recent, now)
	return true, 0
}

// Until returns how long until key has room in the window. It records
// nothing.
func (l *WindowLimiter) Until(key string) time.Duration {
	if l.max <= 0 {
		return 0
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	recent := l.prune(l.events[key], now)
	l.events[key] = recent
	if len(recent) < l.max {
		return 0
	}
	return recent[len(recent)-l.max].Add(l.window).Sub(now)
}

// Wait blocks until key has room in the window or ctx ends. The slot is
// not taken; callers still go through Check.
func (l *WindowLimiter) Wait(ctx context.Context, key string) error {
	for {
		wait := l.Until(key)
		if wait <= 0 {
			return ctx.Err()
		}
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

func (l *WindowLimiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.events, key)
}

// Cleanup drops keys with no events left in the window until ctx ends.
func (l *WindowLimiter) Cleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.sweep()
		}
	}
}

func (l *WindowLimiter) sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for key, events := range l.events {
		if recent := l.prune(events, now); len(recent) == 0 {
			delete(l.events, key)
		} else {
			l.events[key] = recent
		}
	}
}

func (l *WindowLimiter) prune(events []time.Time, now time.Time) []time.Time {
	cutoff := now.Add(-l.window)
	i := 0
	for i < len(events) && !events[i].After(cutoff) {
		i++
	}
	return events[i:]
}
