package client

import (
	"context"
	"fmt"
	"time"
)

// withProcessingTimeout wraps the context with the provided timeout if it lacks
// a deadline. A non-positive timeout leaves the context unbounded.
func withProcessingTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline || timeout <= 0 {
		return ctx, func() {}
	}

	return context.WithTimeout(ctx, timeout)
}

// waitForNextPoll blocks until the timer fires or the context is cancelled.
func waitForNextPoll(ctx context.Context, timer *time.Timer, operation Operation) error {
	select {
	case <-ctx.Done():
		if operation == "" {
			operation = "job"
		}
		return fmt.Errorf("waiting for %s cancelled: %w", operation, ctx.Err())
	case <-timer.C:
		return nil
	}
}
