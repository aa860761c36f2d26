package tokenbucket

import (
	"math"
	"time"
)

// bucket is the per-key state. It is only touched while Limiter.mu is held.
type bucket struct {
	tokens     float64
	lastRefill time.Time
}

func newBucket(limit Limit, now time.Time) *bucket {
	return &bucket{
		tokens:     float64(limit.Capacity),
		lastRefill: now,
	}
}

// available returns the tokens the bucket holds at now without changing it.
// Multiplying before dividing keeps whole-token refills exact, e.g. 200ms of a
// 5-per-second limit yields exactly 1.0.
func (b *bucket) available(limit Limit, now time.Time) float64 {
	elapsed := now.Sub(b.lastRefill)
	if elapsed <= 0 {
		return b.tokens
	}
	capacity := float64(limit.Capacity)
	return math.Min(capacity, b.tokens+float64(elapsed)*capacity/float64(limit.Window))
}

// refill advances the bucket to now, clamping at capacity.
func (b *bucket) refill(limit Limit, now time.Time) {
	b.tokens = b.available(limit, now)
	if now.After(b.lastRefill) {
		b.lastRefill = now
	}
}

// take refills the bucket and consumes one token if a whole one is available.
// A rejected take leaves the refilled balance untouched.
func (b *bucket) take(limit Limit, now time.Time) Result {
	b.refill(limit, now)

	if b.tokens >= 1 {
		b.tokens--
		return Result{
			Allowed:   true,
			Remaining: uint64(b.tokens),
		}
	}

	missing := 1 - b.tokens
	return Result{
		Allowed:    false,
		Remaining:  0,
		RetryAfter: time.Duration(math.Ceil(missing * float64(limit.Window) / float64(limit.Capacity))),
	}
}
