package tokenbucket

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Sweep removes every bucket whose last refill happened at least idle ago and
// that has refilled to capacity, and returns how many were removed. A bucket
// short of capacity is kept whatever idle is, so eviction never hands a key a
// larger burst than it would otherwise get.
func (l *Limiter) Sweep(idle time.Duration) int {
	l.mu.Lock()
	now := l.clock.Now()
	capacity := float64(l.limit.Capacity)
	evicted := 0
	for key, b := range l.buckets {
		if now.Sub(b.lastRefill) >= idle && b.available(l.limit, now) >= capacity {
			delete(l.buckets, key)
			evicted++
		}
	}
	tracked := len(l.buckets)
	l.mu.Unlock()

	mon.IntVal("buckets_tracked").Observe(int64(tracked))
	if evicted > 0 {
		mon.Counter("buckets_evicted").Inc(int64(evicted))
		l.log.Info("evicted idle buckets",
			zap.Int("evicted", evicted),
			zap.Int("tracked", tracked),
			zap.Duration("idle", idle))
	}
	return evicted
}

// Run sweeps idle buckets every IdleTimeout until ctx is canceled. When the
// limiter was built without an IdleTimeout it only waits for ctx.
func (l *Limiter) Run(ctx context.Context) (err error) {
	defer mon.Task()(&ctx)(&err)

	if l.idleTimeout <= 0 {
		<-ctx.Done()
		return nil
	}

	ticker := time.NewTicker(l.idleTimeout)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			l.Sweep(l.idleTimeout)
		}
	}
}
