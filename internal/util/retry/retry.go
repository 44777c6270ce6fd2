package retry

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Config holds retry configuration.
type Config struct {
	// MaxAttempts is the total number of attempts, including the first one.
	MaxAttempts int

	// DelaySchedule fixes the delay before each retry. Entry i is the
	// delay after failed attempt i+1; when the schedule is shorter than
	// the number of retries, the last entry repeats.
	DelaySchedule []time.Duration

	// InitialDelay, MaxDelay and Multiplier describe an exponential
	// backoff used when no DelaySchedule is set.
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64

	// OnRetry, if set, is called before sleeping between attempts.
	OnRetry func(attempt int, delay time.Duration, err error)
}

// Option is a functional option for retry configuration.
type Option func(*Config)

// Do executes the operation, retrying on failure until MaxAttempts is
// reached. Delays between attempts come from the fixed DelaySchedule when
// one is configured, otherwise from exponential backoff. Context
// cancellation is respected while waiting.
//
// Errors wrapped with Fatal() are not retried.
func Do(ctx context.Context, operation func() error, opts ...Option) error {
	cfg := &Config{
		MaxAttempts:  3,
		InitialDelay: 1 * time.Second,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	var lastErr error

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		err := operation()
		if err == nil {
			return nil
		}

		lastErr = err

		if IsFatal(err) {
			return fmt.Errorf("fatal error (not retrying): %w", err)
		}

		if attempt < cfg.MaxAttempts {
			delay := cfg.delayFor(attempt)
			if cfg.OnRetry != nil {
				cfg.OnRetry(attempt, delay, err)
			}
			select {
			case <-ctx.Done():
				return fmt.Errorf("context cancelled after %d attempts: %w", attempt, ctx.Err())
			case <-time.After(delay):
			}
		}
	}

	return fmt.Errorf("operation failed after %d attempts: %w", cfg.MaxAttempts, lastErr)
}

// delayFor returns the delay after the given failed attempt (1-based).
func (c *Config) delayFor(attempt int) time.Duration {
	if len(c.DelaySchedule) > 0 {
		idx := attempt - 1
		if idx >= len(c.DelaySchedule) {
			idx = len(c.DelaySchedule) - 1
		}
		return c.DelaySchedule[idx]
	}

	delay := c.InitialDelay
	for i := 1; i < attempt; i++ {
		delay = time.Duration(float64(delay) * c.Multiplier)
		if delay > c.MaxDelay {
			return c.MaxDelay
		}
	}
	return delay
}

// WithMaxAttempts sets the total number of attempts.
func WithMaxAttempts(n int) Option {
	return func(c *Config) {
		c.MaxAttempts = n
	}
}

// WithDelaySchedule sets a fixed delay sequence between attempts.
func WithDelaySchedule(delays []time.Duration) Option {
	return func(c *Config) {
		c.DelaySchedule = delays
	}
}

// WithInitialDelay sets the initial delay for exponential backoff.
func WithInitialDelay(d time.Duration) Option {
	return func(c *Config) {
		c.InitialDelay = d
	}
}

// WithMaxDelay sets the maximum delay for exponential backoff.
func WithMaxDelay(d time.Duration) Option {
	return func(c *Config) {
		c.MaxDelay = d
	}
}

// WithMultiplier sets the backoff multiplier.
func WithMultiplier(m float64) Option {
	return func(c *Config) {
		c.Multiplier = m
	}
}

// WithOnRetry registers a callback invoked before each retry sleep.
func WithOnRetry(fn func(attempt int, delay time.Duration, err error)) Option {
	return func(c *Config) {
		c.OnRetry = fn
	}
}

// FatalError wraps an error to mark it as fatal (non-retryable).
type FatalError struct {
	Err error
}

func (e *FatalError) Error() string {
	return e.Err.Error()
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

// Fatal marks an error as fatal (non-retryable).
// Operations that encounter fatal errors will not be retried.
func Fatal(err error) error {
	if err == nil {
		return nil
	}
	return &FatalError{Err: err}
}

// IsFatal checks if an error is fatal (non-retryable).
func IsFatal(err error) bool {
	var fatalErr *FatalError
	return errors.As(err, &fatalErr)
}
