package ratelimit

import (
	"math"
	"math/rand/v2"
	"time"
)

// maxDelay keeps uncapped schedules inside time.Duration.
const maxDelay = float64(1 << 62)

// Backoff grows a delay geometrically with each attempt.
//
// The n-th delay is Base * Factor^(n-1), bounded by Cap when Cap is positive.
// Spread in [0,1] randomly shortens each delay by up to that fraction of it,
// which keeps many callers from retrying at the same instant.
type Backoff struct {
	Base   time.Duration
	Cap    time.Duration
	Factor float64
	Spread float64

	random func() float64
}

// NewBackoff returns a backoff that spreads delays over the upper half of
// each step.
func NewBackoff(base, limit time.Duration, factor float64) *Backoff {
	return &Backoff{Base: base, Cap: limit, Factor: factor, Spread: 0.5, random: rand.Float64}
}

// NewExactBackoff returns a backoff without randomness, for schedules that
// have to be predictable such as queue retries.
func NewExactBackoff(base, limit time.Duration, factor float64) *Backoff {
	return &Backoff{Base: base, Cap: limit, Factor: factor}
}

// Duration returns the delay before the given attempt. Attempts below one
// get the base delay.
func (b *Backoff) Duration(attempt int) time.Duration {
	if attempt < 1 {
		return b.Base
	}

	d := float64(b.Base) * math.Pow(b.Factor, float64(attempt-1))
	if limit := float64(b.Cap); limit > 0 && d > limit {
		d = limit
	}
	if math.IsInf(d, 0) || d > maxDelay {
		d = maxDelay
	}

	if b.Spread > 0 && b.random != nil {
		d -= d * b.Spread * b.random()
	}
	return time.Duration(d)
}
