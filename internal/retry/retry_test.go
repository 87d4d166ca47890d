package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func noWait(waits *int) func(ctx context.Context, d time.Duration) error {
	return func(_ context.Context, _ time.Duration) error {
		*waits++
		return nil
	}
}

func TestDoSucceedsOnThirdAttempt(t *testing.T) {
	waits := 0
	policy := New(3, time.Minute).WithWait(noWait(&waits))

	calls := 0
	err := policy.Do(context.Background(), func() error {
		calls++
		if calls < 3 {
			return errors.New("boom")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 calls, got %d", calls)
	}
	if waits != 2 {
		t.Fatalf("expected 2 waits, got %d", waits)
	}
}

func TestDoExhaustsAttempts(t *testing.T) {
	waits := 0
	policy := New(3, time.Minute).WithWait(noWait(&waits))

	calls := 0
	boom := errors.New("boom")
	err := policy.Do(context.Background(), func() error {
		calls++
		return boom
	})
	if err == nil {
		t.Fatal("expected an error")
	}
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped boom, got %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected exactly 3 calls, got %d", calls)
	}
}

func TestDoStopsWhenWaitFails(t *testing.T) {
	policy := New(3, time.Minute).WithWait(func(_ context.Context, _ time.Duration) error {
		return context.Canceled
	})

	calls := 0
	err := policy.Do(context.Background(), func() error {
		calls++
		return errors.New("boom")
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected 1 call before cancellation, got %d", calls)
	}
}

func TestWaitForZeroDuration(t *testing.T) {
	if err := WaitFor(context.Background(), 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestWaitForCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := WaitFor(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
