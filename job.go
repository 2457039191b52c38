package client

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// StatusFetcher retrieves the raw status response behind a status URL.
type StatusFetcher func(ctx context.Context, url string) (json.RawMessage, error)

// JobSnapshot is the observable state of a job after a status observation.
type JobSnapshot struct {
	URL     string      `json:"url"`
	JobID   string      `json:"jobId,omitempty"`
	Outputs []JobOutput `json:"outputs"`
}

// Done reports whether at least one output was observed and every output is terminal.
func (s JobSnapshot) Done() bool {
	if len(s.Outputs) == 0 {
		return false
	}
	for _, output := range s.Outputs {
		if !output.Status.Terminal() {
			return false
		}
	}
	return true
}

// nextSnapshot computes the state that follows prev once raw has been observed.
// Outputs and job id are replaced wholesale; the status URL follows the
// response's self link and only falls back to prev when the link is absent.
func nextSnapshot(prev JobSnapshot, raw []byte) (JobSnapshot, error) {
	resp, err := decodeStatus(raw)
	if err != nil {
		return prev, err
	}

	next := JobSnapshot{
		URL:     resp.url,
		JobID:   resp.jobID,
		Outputs: resp.jobOutputs(),
	}
	if next.URL == "" {
		next.URL = prev.URL
	}

	return next, nil
}

// Job tracks an asynchronous service job through its status URL.
//
// A job starts without outputs and is not done until a status observation
// reports every output as succeeded or failed. Polls of one job are
// serialized; separate jobs are independent.
type Job struct {
	fetch     StatusFetcher
	operation Operation
	logger    *zap.Logger
	metrics   *Metrics
	started   time.Time

	pollMu sync.Mutex
	mu     sync.RWMutex
	state  JobSnapshot
}

// JobOption customizes a Job.
type JobOption func(*Job)

// WithJobOperation labels the job in logs and metrics.
func WithJobOperation(operation Operation) JobOption {
	return func(j *Job) {
		j.operation = operation
	}
}

// WithJobLogger sets the logger used for poll events.
func WithJobLogger(logger *zap.Logger) JobOption {
	return func(j *Job) {
		if logger != nil {
			j.logger = logger
		}
	}
}

// WithJobMetrics records polls and outcomes on m.
func WithJobMetrics(m *Metrics) JobOption {
	return func(j *Job) {
		j.metrics = m
	}
}

// NewJob creates a job from the response of the request that started it. The
// response must carry a status URL in _links.self.href, or be the URL itself
// as a JSON string.
func NewJob(initiate json.RawMessage, fetch StatusFetcher, opts ...JobOption) (*Job, error) {
	if fetch == nil {
		return nil, ErrNilStatusFetcher
	}

	resp, err := decodeStatus(initiate)
	if err != nil || resp.url == "" {
		return nil, errStatusURLMissing(initiate)
	}

	j := &Job{
		fetch:   fetch,
		logger:  zap.NewNop(),
		started: time.Now(),
		state: JobSnapshot{
			URL:     resp.url,
			Outputs: []JobOutput{},
		},
	}
	for _, opt := range opts {
		opt(j)
	}

	return j, nil
}

// URL returns the current status URL.
func (j *Job) URL() string {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.state.URL
}

// JobID returns the service job id, empty until the first poll.
func (j *Job) JobID() string {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.state.JobID
}

// Outputs returns a copy of the latest output statuses.
func (j *Job) Outputs() []JobOutput {
	return j.Snapshot().Outputs
}

// Snapshot returns a copy of the latest observed state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.RLock()
	defer j.mu.RUnlock()

	snapshot := j.state
	snapshot.Outputs = make([]JobOutput, len(j.state.Outputs))
	copy(snapshot.Outputs, j.state.Outputs)
	return snapshot
}

// IsDone reports whether every output reached a terminal status. A job that
// has not been polled yet is never done.
func (j *Job) IsDone() bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.state.Done()
}

// Failures returns the outputs that failed.
func (j *Job) Failures() []JobOutput {
	var failed []JobOutput
	for _, output := range j.Outputs() {
		if output.Status == JobStatusFailed {
			failed = append(failed, output)
		}
	}
	return failed
}

// Succeeded reports whether the job is done and no output failed.
func (j *Job) Succeeded() bool {
	return j.IsDone() && len(j.Failures()) == 0
}

// MarshalJSON encodes the latest snapshot.
func (j *Job) MarshalJSON() ([]byte, error) {
	return json.Marshal(j.Snapshot())
}

// Poll fetches the job status once and replaces the job state with it.
// Fetch errors are returned unchanged and leave the state untouched.
func (j *Job) Poll(ctx context.Context) (*Job, error) {
	j.pollMu.Lock()
	defer j.pollMu.Unlock()

	url := j.URL()
	raw, err := j.fetch(ctx, url)
	if err != nil {
		return j, err
	}

	j.mu.Lock()
	next, err := nextSnapshot(j.state, raw)
	if err == nil {
		j.state = next
	}
	j.mu.Unlock()

	if err != nil {
		return j, fmt.Errorf("job status from %s: %w", url, err)
	}

	j.metrics.observePoll(j.operation)
	j.logger.Debug("polled job",
		zap.String("operation", string(j.operation)),
		zap.String("job-id", next.JobID),
		zap.Int("outputs", len(next.Outputs)),
		zap.Bool("done", next.Done()),
	)

	return j, nil
}

// PollUntilDone waits interval between polls until the job is done. An
// interval of zero uses DefaultPollInterval. The loop stops on the first poll
// error or when ctx is done.
func (j *Job) PollUntilDone(ctx context.Context, interval time.Duration) (*Job, error) {
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	timer := time.NewTimer(interval)
	defer timer.Stop()

	for !j.IsDone() {
		if err := waitForNextPoll(ctx, timer, j.operation); err != nil {
			return j, err
		}
		if _, err := j.Poll(ctx); err != nil {
			return j, err
		}
		timer.Reset(interval)
	}

	snapshot := j.Snapshot()
	j.metrics.observeDone(j.operation, snapshot.Outputs, time.Since(j.started))
	j.logger.Info("job finished",
		zap.String("operation", string(j.operation)),
		zap.String("job-id", snapshot.JobID),
		zap.Int("outputs", len(snapshot.Outputs)),
		zap.Int("failed", len(j.Failures())),
	)

	return j, nil
}
