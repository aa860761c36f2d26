package tokenbucket

import "time"

// Clock is the time source consumed by a Limiter. Successive calls to Now must
// never go backwards when compared with Time.Sub.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the process clock. Values returned by time.Now carry a
// monotonic reading, so Sub between them is immune to wall-clock changes.
type SystemClock struct{}

// Now returns time.Now.
func (SystemClock) Now() time.Time { return time.Now() }
