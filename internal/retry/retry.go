package retry

import (
	"context"
	"fmt"
	"time"
)

// Policy describes a bounded retry loop with a fixed interval between
// attempts. The zero value is not usable; construct with New.
type Policy struct {
	Attempts int
	Interval time.Duration

	// wait is replaceable in tests to avoid real sleeps.
	wait func(ctx context.Context, d time.Duration) error
}

func New(attempts int, interval time.Duration) *Policy {
	if attempts < 1 {
		attempts = 1
	}
	return &Policy{
		Attempts: attempts,
		Interval: interval,
		wait:     WaitFor,
	}
}

// WithWait returns a copy of the policy using the given wait function.
// Intended for tests with a fake clock.
func (p *Policy) WithWait(wait func(ctx context.Context, d time.Duration) error) *Policy {
	clone := *p
	clone.wait = wait
	return &clone
}

// Do runs op until it succeeds or the attempt budget is exhausted. The last
// error is returned wrapped with the attempt count. Waiting between attempts
// is cancellable through the context.
func (p *Policy) Do(ctx context.Context, op func() error) error {
	var last error
	for attempt := 1; attempt <= p.Attempts; attempt++ {
		last = op()
		if last == nil {
			return nil
		}
		if attempt == p.Attempts {
			break
		}
		if err := p.wait(ctx, p.Interval); err != nil {
			return err
		}
	}
	return fmt.Errorf("after %d attempts: %w", p.Attempts, last)
}

var sleep = time.Sleep

// WaitFor blocks for the given duration or until the context is done.
func WaitFor(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		sleep(d)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}
