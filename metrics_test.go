package client

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetricsReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()

	first, err := NewMetrics(reg)
	require.NoError(t, err)
	second, err := NewMetrics(reg)
	require.NoError(t, err)

	assert.Same(t, first.polls, second.polls)
	assert.Same(t, first.outputs, second.outputs)
	assert.Same(t, first.duration, second.duration)
}

func TestJobMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics, err := NewMetrics(reg)
	require.NoError(t, err)

	polls := 0
	job, err := NewJob(json.RawMessage(`"http://host/status"`),
		func(context.Context, string) (json.RawMessage, error) {
			polls++
			if polls < 3 {
				return json.RawMessage(`{"outputs":[{"status":"running"},{"status":"running"}]}`), nil
			}
			return json.RawMessage(`{"outputs":[{"status":"succeeded"},{"status":"failed"}]}`), nil
		},
		WithJobOperation(OperationAutoTone),
		WithJobMetrics(metrics),
	)
	require.NoError(t, err)

	_, err = job.PollUntilDone(context.Background(), time.Millisecond)
	require.NoError(t, err)

	op := string(OperationAutoTone)
	assert.Equal(t, float64(3), testutil.ToFloat64(metrics.polls.WithLabelValues(op)))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.outputs.WithLabelValues(op, string(JobStatusSucceeded))))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.outputs.WithLabelValues(op, string(JobStatusFailed))))
	assert.Equal(t, 1, testutil.CollectAndCount(metrics.duration))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.observePoll(OperationCreateMask)
		m.observeDone(OperationCreateMask, []JobOutput{{Status: JobStatusSucceeded}}, time.Second)
	})
}
