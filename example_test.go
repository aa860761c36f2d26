package tokenbucket

import (
	"fmt"
	"time"
)

// example is just to show the behaviour, integrated with a fake clock; check
// cmd/ for a run against the system clock.
func ExampleLimiter_Allow() {
	clock := newTestTime(time.Unix(0, 0))
	limiter, _ := New(Limit{Capacity: 5, Window: time.Second}, WithClock(clock))

	for i := 0; i < 11; i++ {
		fmt.Printf("call %d: %s\n", i, verdict(limiter.Allow("user_123")))
	}
	clock.advance(time.Second)
	for i := 11; i < 16; i++ {
		fmt.Printf("call %d: %s\n", i, verdict(limiter.Allow("user_123")))
	}

	// Output:
	// call 0: ALLOWED
	// call 1: ALLOWED
	// call 2: ALLOWED
	// call 3: ALLOWED
	// call 4: ALLOWED
	// call 5: BLOCKED
	// call 6: BLOCKED
	// call 7: BLOCKED
	// call 8: BLOCKED
	// call 9: BLOCKED
	// call 10: BLOCKED
	// call 11: ALLOWED
	// call 12: ALLOWED
	// call 13: ALLOWED
	// call 14: ALLOWED
	// call 15: ALLOWED
}

func ExampleLimiter_Take() {
	clock := newTestTime(time.Unix(0, 0))
	limiter, _ := New(PerSecond(2), WithClock(clock)) // 2 req/sec, burst 2

	res1 := limiter.Take("user:42")
	res2 := limiter.Take("user:42")
	res3 := limiter.Take("user:42")
	clock.advance(500 * time.Millisecond) // wait long enough for one token to replenish
	res4 := limiter.Take("user:42")

	fmt.Printf("first: allowed=%t remaining=%d retry_after=%s\n", res1.Allowed, res1.Remaining, res1.RetryAfter)
	fmt.Printf("second: allowed=%t remaining=%d retry_after=%s\n", res2.Allowed, res2.Remaining, res2.RetryAfter)
	fmt.Printf("third: allowed=%t remaining=%d retry_after=%s\n", res3.Allowed, res3.Remaining, res3.RetryAfter)
	fmt.Printf("after wait: allowed=%t remaining=%d retry_after=%s\n", res4.Allowed, res4.Remaining, res4.RetryAfter)

	// Output:
	// first: allowed=true remaining=1 retry_after=0s
	// second: allowed=true remaining=0 retry_after=0s
	// third: allowed=false remaining=0 retry_after=500ms
	// after wait: allowed=true remaining=0 retry_after=0s
}

func ExampleLimiter_Reset() {
	clock := newTestTime(time.Unix(0, 0))
	limiter, _ := New(PerMinute(1), WithClock(clock)) // 1 req/min, burst 1

	first := limiter.Allow("session:1")
	second := limiter.Allow("session:1")
	limiter.Reset("session:1") // clear state
	_, tracked := limiter.Peek("session:1")
	third := limiter.Allow("session:1")

	fmt.Printf("first=%t second=%t tracked after reset=%t third=%t\n", first, second, tracked, third)

	// Output:
	// first=true second=false tracked after reset=false third=true
}

func verdict(allowed bool) string {
	if allowed {
		return "ALLOWED"
	}
	return "BLOCKED"
}
