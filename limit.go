package tokenbucket

import (
	"fmt"
	"time"
)

// MaxCapacity is the largest Capacity a Limit may have. Token counts are
// float64, which holds every integer up to 2^53 exactly.
const MaxCapacity = 1 << 53

// Limit describes the rate configuration shared by every key of a Limiter.
type Limit struct {
	// Capacity is the most tokens a bucket can hold, i.e. the largest burst.
	Capacity uint64
	// Window is how long an empty bucket takes to refill to Capacity.
	Window time.Duration
}

func (l Limit) String() string {
	return fmt.Sprintf("%d req/%s", l.Capacity, fmtDur(l.Window))
}

// IsZero reports whether l is the zero Limit.
func (l Limit) IsZero() bool {
	return l == Limit{}
}

// RefillRate returns the number of tokens added to a bucket per second.
func (l Limit) RefillRate() float64 {
	if l.Window <= 0 {
		return 0
	}
	return float64(l.Capacity) / l.Window.Seconds()
}

// Verify returns a ConfigError if l cannot be used to build a Limiter.
func (l Limit) Verify() error {
	if l.Capacity == 0 {
		return ConfigError.New("capacity must be greater than zero")
	}
	if l.Capacity > MaxCapacity {
		return ConfigError.New("capacity must not exceed %d, got %d", uint64(MaxCapacity), l.Capacity)
	}
	if l.Window <= 0 {
		return ConfigError.New("window must be greater than zero, got %s", l.Window)
	}
	return nil
}

func fmtDur(d time.Duration) string {
	switch d {
	case time.Second:
		return "s"
	case time.Minute:
		return "m"
	case time.Hour:
		return "h"
	case 24 * time.Hour:
		return "d"
	}
	return d.String()
}

// PerSecond returns a Limit allowing capacity requests per second.
func PerSecond(capacity uint64) Limit {
	return Limit{Capacity: capacity, Window: time.Second}
}

// PerMinute returns a Limit allowing capacity requests per minute.
func PerMinute(capacity uint64) Limit {
	return Limit{Capacity: capacity, Window: time.Minute}
}

// PerHour returns a Limit allowing capacity requests per hour.
func PerHour(capacity uint64) Limit {
	return Limit{Capacity: capacity, Window: time.Hour}
}

// PerDay returns a Limit allowing capacity requests per day.
func PerDay(capacity uint64) Limit {
	return Limit{Capacity: capacity, Window: 24 * time.Hour}
}
