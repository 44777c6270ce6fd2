package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestDo_Success(t *testing.T) {
	t.Parallel()
	attempts := 0
	operation := func() error {
		attempts++
		return nil
	}

	ctx := context.Background()
	err := Do(ctx, operation)

	if err != nil {
		t.Errorf("Expected no error, got: %v", err)
	}
	if attempts != 1 {
		t.Errorf("Expected 1 attempt, got: %d", attempts)
	}
}

func TestDo_SuccessAfterRetries(t *testing.T) {
	t.Parallel()
	attempts := 0
	operation := func() error {
		attempts++
		if attempts < 3 {
			return errors.New("temporary error")
		}
		return nil
	}

	ctx := context.Background()
	err := Do(ctx, operation, WithInitialDelay(10*time.Millisecond))

	if err != nil {
		t.Errorf("Expected no error after retries, got: %v", err)
	}
	if attempts != 3 {
		t.Errorf("Expected 3 attempts, got: %d", attempts)
	}
}

func TestDo_MaxAttempts(t *testing.T) {
	t.Parallel()
	attempts := 0
	operation := func() error {
		attempts++
		return errors.New("persistent error")
	}

	ctx := context.Background()
	err := Do(ctx, operation,
		WithMaxAttempts(3),
		WithInitialDelay(10*time.Millisecond))

	if err == nil {
		t.Error("Expected error after max attempts, got nil")
	}
	if attempts != 3 {
		t.Errorf("Expected 3 attempts, got: %d", attempts)
	}
}

func TestDo_DelaySchedule(t *testing.T) {
	t.Parallel()
	attempts := 0
	var delays []time.Duration
	operation := func() error {
		attempts++
		return errors.New("persistent error")
	}

	schedule := []time.Duration{
		5 * time.Millisecond,
		10 * time.Millisecond,
		20 * time.Millisecond,
	}

	ctx := context.Background()
	err := Do(ctx, operation,
		WithMaxAttempts(3),
		WithDelaySchedule(schedule),
		WithOnRetry(func(_ int, delay time.Duration, _ error) {
			delays = append(delays, delay)
		}))

	if err == nil {
		t.Error("Expected error after max attempts, got nil")
	}
	if attempts != 3 {
		t.Errorf("Expected 3 attempts, got: %d", attempts)
	}
	// Two retries, so two sleeps: the first two schedule entries.
	if len(delays) != 2 {
		t.Fatalf("Expected 2 retry delays, got: %d", len(delays))
	}
	if delays[0] != schedule[0] || delays[1] != schedule[1] {
		t.Errorf("Expected delays %v/%v, got: %v", schedule[0], schedule[1], delays)
	}
}

func TestDo_ShortScheduleRepeatsLastDelay(t *testing.T) {
	t.Parallel()
	var delays []time.Duration
	operation := func() error {
		return errors.New("persistent error")
	}

	ctx := context.Background()
	_ = Do(ctx, operation,
		WithMaxAttempts(4),
		WithDelaySchedule([]time.Duration{5 * time.Millisecond}),
		WithOnRetry(func(_ int, delay time.Duration, _ error) {
			delays = append(delays, delay)
		}))

	if len(delays) != 3 {
		t.Fatalf("Expected 3 retry delays, got: %d", len(delays))
	}
	for i, d := range delays {
		if d != 5*time.Millisecond {
			t.Errorf("delay %d: expected 5ms, got %v", i, d)
		}
	}
}

func TestDo_FatalNotRetried(t *testing.T) {
	t.Parallel()
	attempts := 0
	operation := func() error {
		attempts++
		return Fatal(errors.New("bad request"))
	}

	ctx := context.Background()
	err := Do(ctx, operation, WithInitialDelay(10*time.Millisecond))

	if err == nil {
		t.Error("Expected error, got nil")
	}
	if attempts != 1 {
		t.Errorf("Expected 1 attempt for fatal error, got: %d", attempts)
	}
}

func TestDo_ContextCancellation(t *testing.T) {
	t.Parallel()
	attempts := 0
	operation := func() error {
		attempts++
		return errors.New("persistent error")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Do(ctx, operation, WithInitialDelay(time.Second))

	if err == nil {
		t.Error("Expected cancellation error, got nil")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled in chain, got: %v", err)
	}
	if attempts != 1 {
		t.Errorf("Expected 1 attempt before cancellation, got: %d", attempts)
	}
}

func TestIsFatal(t *testing.T) {
	t.Parallel()
	if IsFatal(errors.New("plain")) {
		t.Error("plain error should not be fatal")
	}
	if !IsFatal(Fatal(errors.New("wrapped"))) {
		t.Error("wrapped error should be fatal")
	}
	if Fatal(nil) != nil {
		t.Error("Fatal(nil) should return nil")
	}
}
