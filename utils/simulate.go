package utils

import (
	"context"
	"time"
)

// Simulate stands in for a network round trip: it waits d, or until ctx is
// done, whichever comes first. A non-positive d returns immediately.
func Simulate(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
