package client

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWithProcessingTimeout(t *testing.T) {
	ctx, cancel := withProcessingTimeout(context.Background(), 0)
	defer cancel()
	_, hasDeadline := ctx.Deadline()
	assert.False(t, hasDeadline)

	ctx, cancel = withProcessingTimeout(context.Background(), time.Minute)
	defer cancel()
	deadline, hasDeadline := ctx.Deadline()
	assert.True(t, hasDeadline)
	assert.WithinDuration(t, time.Now().Add(time.Minute), deadline, time.Second)

	parent, parentCancel := context.WithTimeout(context.Background(), time.Hour)
	defer parentCancel()
	ctx, cancel = withProcessingTimeout(parent, time.Minute)
	defer cancel()
	deadline, _ = ctx.Deadline()
	assert.WithinDuration(t, time.Now().Add(time.Hour), deadline, time.Second)
}

func TestWaitForNextPollCancelled(t *testing.T) {
	timer := time.NewTimer(time.Hour)
	defer timer.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := waitForNextPoll(ctx, timer, OperationStraighten)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, err.Error(), "waiting for straighten cancelled")
}
