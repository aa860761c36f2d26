package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/zeebo/errs"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	tokenbucket "github.com/sagarsuperuser/token-bucket"
)

var (
	rootCmd = &cobra.Command{
		Use:   "demo",
		Short: "issue a burst of requests against a token bucket limiter, pause, then issue more",
		RunE:  runDemo,
	}
	config Config
)

// Config holds flags' values.
type Config struct {
	Limiter tokenbucket.Config
	Key     string
	Calls   int
	Pause   time.Duration
	After   int
	Verbose bool
}

func (config *Config) bindFlags(set *pflag.FlagSet) {
	config.Limiter.BindFlags(set)
	set.StringVar(&config.Key, "key", "user_123", "key every request is made for")
	set.IntVar(&config.Calls, "calls", 11, "number of requests issued before the pause")
	set.DurationVar(&config.Pause, "pause", time.Second, "how long to wait between the two rounds")
	set.IntVar(&config.After, "after", 5, "number of requests issued after the pause")
	set.BoolVar(&config.Verbose, "verbose", false, "log limiter internals at debug level")
}

// VerifyFlags verifies whether flags have correct values and reports any error
// encountered.
func (config *Config) VerifyFlags() error {
	var errlist errs.Group

	errlist.Add(config.Limiter.Verify())
	if config.Calls < 0 {
		errlist.Add(errs.New("calls cannot be negative"))
	}
	if config.After < 0 {
		errlist.Add(errs.New("after cannot be negative"))
	}
	if config.Pause < 0 {
		errlist.Add(errs.New("pause cannot be negative"))
	}

	return errlist.Err()
}

func init() {
	config.bindFlags(rootCmd.Flags())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runDemo(cmd *cobra.Command, _ []string) error {
	if err := config.VerifyFlags(); err != nil {
		return err
	}

	log, err := newLogger(config.Verbose)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	limiter, err := tokenbucket.NewFromConfig(config.Limiter, tokenbucket.WithLogger(log.Named("limiter")))
	if err != nil {
		return err
	}

	log.Info("starting demo",
		zap.Stringer("limit", limiter.Limit()),
		zap.Float64("refill_per_second", limiter.Limit().RefillRate()),
		zap.String("key", config.Key))

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	var group errgroup.Group
	group.Go(func() error {
		return limiter.Run(ctx)
	})
	group.Go(func() error {
		defer cancel()
		return drive(ctx, cmd.OutOrStdout(), limiter, config)
	})

	return group.Wait()
}

// drive issues config.Calls requests, waits config.Pause and issues
// config.After more, printing each decision to w.
func drive(ctx context.Context, w io.Writer, limiter *tokenbucket.Limiter, config Config) error {
	call := 0
	round := func(n int) error {
		for i := 0; i < n; i++ {
			res := limiter.Take(config.Key)
			verdict := "BLOCKED"
			if res.Allowed {
				verdict = "ALLOWED"
			}
			if _, err := fmt.Fprintf(w, "request %2d for %s: %s (remaining=%d retry_after=%s)\n",
				call, config.Key, verdict, res.Remaining, res.RetryAfter); err != nil {
				return err
			}
			call++
		}
		return nil
	}

	if err := round(config.Calls); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "waiting %s...\n", config.Pause); err != nil {
		return err
	}
	timer := time.NewTimer(config.Pause)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
	}

	return round(config.After)
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	log, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return log.Named("demo"), nil
}
