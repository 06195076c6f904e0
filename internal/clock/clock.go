// Package clock abstracts the monotonic clock used for pacing, debouncing
// and sensor retry delays, so tests can run the control loop without waiting.
package clock

import (
	"context"
	"time"
)

// Clock tells time and creates wake-up channels.
type Clock interface {
	// Now returns the current time with a monotonic reading.
	Now() time.Time
	// After returns a channel that receives once d has elapsed.
	After(d time.Duration) <-chan time.Time
}

// Real is the runtime clock.
type Real struct{}

// Now implements Clock.
func (Real) Now() time.Time {
	return time.Now()
}

// After implements Clock.
func (Real) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}

// Sleep blocks for d on c, returning early with the context error if ctx is cancelled.
func Sleep(ctx context.Context, c Clock, d time.Duration) error {
	if err := ctx.Err(); err != nil || d <= 0 {
		return err
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-c.After(d):
		return nil
	}
}

// Since returns the elapsed time since start measured on c.
func Since(c Clock, start time.Time) time.Duration {
	return c.Now().Sub(start)
}
