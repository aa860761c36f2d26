package tokenbucket

import (
	"sync"
	"time"

	"github.com/spacemonkeygo/monkit/v3"
	"go.uber.org/zap"
)

var mon = monkit.Package()

// Result captures the admission decision for a key.
type Result struct {
	// Allowed reports whether the operation was admitted and a token consumed.
	Allowed bool

	// Remaining is the number of whole tokens left after the decision.
	Remaining uint64

	// RetryAfter is how long to wait before one token becomes available,
	// assuming no other caller consumes it first. It is zero when Allowed.
	RetryAfter time.Duration
}

// Limiter admits or rejects operations per key. The zero value is not usable;
// build one with New or NewFromConfig.
type Limiter struct {
	limit       Limit
	idleTimeout time.Duration
	clock       Clock
	log         *zap.Logger

	mu      sync.Mutex
	buckets map[string]*bucket
}

// New returns a Limiter enforcing limit for every key. It returns a
// ConfigError if limit has no capacity or a non-positive window.
func New(limit Limit, opts ...Option) (*Limiter, error) {
	if err := limit.Verify(); err != nil {
		return nil, err
	}

	l := &Limiter{
		limit:   limit,
		clock:   SystemClock{},
		log:     zap.NewNop(),
		buckets: make(map[string]*bucket),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// NewFromConfig verifies c and returns a Limiter built from it.
func NewFromConfig(c Config, opts ...Option) (*Limiter, error) {
	if err := c.Verify(); err != nil {
		return nil, err
	}

	l, err := New(c.Limit(), opts...)
	if err != nil {
		return nil, err
	}
	l.idleTimeout = c.IdleTimeout
	return l, nil
}

// Limit returns the configured limit.
func (l *Limiter) Limit() Limit { return l.limit }

// Allow reports whether one operation for key may happen now, consuming a
// token if so.
func (l *Limiter) Allow(key string) bool {
	return l.Take(key).Allowed
}

// Take is Allow with the details of the decision. An unseen key starts with a
// full bucket.
func (l *Limiter) Take(key string) Result {
	l.mu.Lock()
	now := l.clock.Now()
	b, ok := l.buckets[key]
	if !ok {
		b = newBucket(l.limit, now)
		l.buckets[key] = b
	}
	res := b.take(l.limit, now)
	l.mu.Unlock()

	if !ok {
		l.log.Debug("bucket created", zap.String("key", key))
	}
	if res.Allowed {
		mon.Event("admit_allowed")
	} else {
		mon.Event("admit_rejected")
	}
	return res
}

// Peek returns the tokens key would hold now without consuming any. ok is
// false when key is not tracked.
func (l *Limiter) Peek(key string) (tokens float64, ok bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok {
		return 0, false
	}
	return b.available(l.limit, l.clock.Now()), true
}

// Reset forgets key, so its next operation sees a full bucket.
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	_, ok := l.buckets[key]
	delete(l.buckets, key)
	l.mu.Unlock()

	if ok {
		l.log.Debug("bucket reset", zap.String("key", key))
	}
}

// ResetAll forgets every key.
func (l *Limiter) ResetAll() {
	l.mu.Lock()
	n := len(l.buckets)
	l.buckets = make(map[string]*bucket)
	l.mu.Unlock()

	l.log.Info("all buckets reset", zap.Int("count", n))
}

// Len returns the number of tracked keys.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}
