package store

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func noBackoff(t *testing.T) {
	t.Helper()
	prev := backoff
	backoff = func(int) time.Duration { return 0 }
	t.Cleanup(func() { backoff = prev })
}

func TestBackoff_Range(t *testing.T) {
	for attempt, base := range []time.Duration{time.Second, 2 * time.Second, 4 * time.Second} {
		for range 20 {
			d := Backoff(attempt)
			if d < base || d >= base+base/2 {
				t.Fatalf("attempt %d: %v outside [%v, %v)", attempt, d, base, base+base/2)
			}
		}
	}
	if d := Backoff(10); d < 30*time.Second || d >= 45*time.Second {
		t.Fatalf("expected capped backoff, got %v", d)
	}
}

func TestRetry_SucceedsAfterTransientErrors(t *testing.T) {
	noBackoff(t)
	calls := 0
	err := Retry(context.Background(), quietLogger(), func() error {
		calls++
		if calls < MaxRetries {
			return &RetryableError{StatusCode: 503}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != MaxRetries {
		t.Errorf("expected %d calls, got %d", MaxRetries, calls)
	}
}

func TestRetry_StopsOnPermanentError(t *testing.T) {
	noBackoff(t)
	calls := 0
	permanent := errors.New("bad request")
	err := Retry(context.Background(), quietLogger(), func() error {
		calls++
		return permanent
	})
	if !errors.Is(err, permanent) {
		t.Fatalf("expected permanent error, got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestRetry_GivesUp(t *testing.T) {
	noBackoff(t)
	calls := 0
	err := Retry(context.Background(), quietLogger(), func() error {
		calls++
		return &RetryableError{StatusCode: 429, Message: "slow down"}
	})
	if !IsRetryable(err) {
		t.Fatalf("expected retryable error, got %v", err)
	}
	if calls != MaxRetries {
		t.Errorf("expected %d calls, got %d", MaxRetries, calls)
	}
}

func TestRetry_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Retry(ctx, quietLogger(), func() error {
		return &RetryableError{StatusCode: 500}
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRetryableError_Truncates(t *testing.T) {
	long := make([]byte, 500)
	for i := range long {
		long[i] = 'x'
	}
	msg := (&RetryableError{StatusCode: 500, Message: string(long)}).Error()
	if len(msg) > 250 {
		t.Errorf("expected truncated message, got %d bytes", len(msg))
	}
}
