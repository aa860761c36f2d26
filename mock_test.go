package tokenbucket

import (
	"sync"
	"testing"
	"time"
)

// testTime is a fake monotonic clock used for testing.
type testTime struct {
	mu  sync.Mutex
	cur time.Time
}

var _ Clock = (*testTime)(nil)

// newTestTime builds a fake clock starting at start.
func newTestTime(start time.Time) *testTime {
	return &testTime{cur: start}
}

// Now returns the current fake time.
func (tt *testTime) Now() time.Time {
	tt.mu.Lock()
	defer tt.mu.Unlock()
	return tt.cur
}

// advance advances the fake time. Negative durations are ignored so the clock
// stays monotonic.
func (tt *testTime) advance(dur time.Duration) {
	if dur < 0 {
		return
	}
	tt.mu.Lock()
	defer tt.mu.Unlock()
	tt.cur = tt.cur.Add(dur)
}

// newTestLimiter builds a limiter driven by a fake clock starting at the Unix
// epoch.
func newTestLimiter(t testing.TB, limit Limit, opts ...Option) (*Limiter, *testTime) {
	t.Helper()

	clock := newTestTime(time.Unix(0, 0))
	l, err := New(limit, append([]Option{WithClock(clock)}, opts...)...)
	if err != nil {
		t.Fatalf("new limiter: %v", err)
	}
	return l, clock
}
