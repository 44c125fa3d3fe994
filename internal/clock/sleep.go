// Package clock abstracts the wall clock and context-aware waiting so loops
// and state machines can be driven deterministically in tests.
package clock

import (
	"context"
	"time"
)

// SleepFunc pauses for d unless ctx ends first. Loops hold one so tests can
// replace the wait.
type SleepFunc func(ctx context.Context, d time.Duration) error

// SleepWithContext waits for d and returns ctx.Err() if ctx ends first.
// A non-positive d only checks ctx.
func SleepWithContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
