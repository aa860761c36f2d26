package tokenbucket

import (
	"time"

	"github.com/spf13/pflag"
	"github.com/zeebo/errs"
	"go.uber.org/zap"

	"storj.io/common/cfgstruct"
)

// Config configures a Limiter.
type Config struct {
	Capacity    uint64        `help:"maximum number of tokens per key, which is also the largest allowed burst" default:"5"`
	Window      time.Duration `help:"time it takes an empty bucket to refill to capacity" default:"1s"`
	IdleTimeout time.Duration `help:"evict buckets untouched for this long; zero keeps every key until reset" default:"0s"`
}

// Limit returns the Limit described by c.
func (c Config) Limit() Limit {
	return Limit{Capacity: c.Capacity, Window: c.Window}
}

// Verify reports every invalid field of c in a single error.
func (c Config) Verify() error {
	var group errs.Group

	if c.Capacity == 0 {
		group.Add(ConfigError.New("capacity must be greater than zero"))
	} else if c.Capacity > MaxCapacity {
		group.Add(ConfigError.New("capacity must not exceed %d, got %d", uint64(MaxCapacity), c.Capacity))
	}
	if c.Window <= 0 {
		group.Add(ConfigError.New("window must be greater than zero, got %s", c.Window))
	}
	if c.IdleTimeout < 0 {
		group.Add(ConfigError.New("idle timeout cannot be negative, got %s", c.IdleTimeout))
	} else if c.IdleTimeout > 0 && c.IdleTimeout < c.Window {
		// a bucket idle for less than a window may still be short of capacity,
		// so dropping it would hand the key a fresh burst.
		group.Add(ConfigError.New("idle timeout %s must not be shorter than window %s", c.IdleTimeout, c.Window))
	}

	return group.Err()
}

// BindFlags registers c's fields on set using their help and default tags.
func (c *Config) BindFlags(set *pflag.FlagSet) {
	cfgstruct.Bind(set, c, cfgstruct.UseReleaseDefaults())
}

// Option customizes a Limiter at construction.
type Option func(*Limiter)

// WithClock sets the time source. It defaults to SystemClock.
func WithClock(clock Clock) Option {
	return func(l *Limiter) {
		if clock != nil {
			l.clock = clock
		}
	}
}

// WithLogger sets the logger. It defaults to a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(l *Limiter) {
		if log != nil {
			l.log = log
		}
	}
}
