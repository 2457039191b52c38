package client

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testStatusURL = "http://host/status"

func staticFetcher(body string) StatusFetcher {
	return func(context.Context, string) (json.RawMessage, error) {
		return json.RawMessage(body), nil
	}
}

func newTestJob(t *testing.T, fetch StatusFetcher) *Job {
	t.Helper()
	job, err := NewJob(json.RawMessage(`{"_links":{"self":{"href":"`+testStatusURL+`"}}}`), fetch)
	require.NoError(t, err)
	return job
}

func TestNewJobStatusURLMissing(t *testing.T) {
	tests := []struct {
		name     string
		initiate string
		detail   string
	}{
		{"missing response", "", "undefined"},
		{"missing links", `{}`, `{}`},
		{"missing self", `{"_links":{}}`, `{"_links":{}}`},
		{"missing href", `{"_links":{"self":{}}}`, `{"_links":{"self":{}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewJob(json.RawMessage(tt.initiate), staticFetcher(`{}`))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrStatusURLMissing)
			assert.True(t, IsErrorCode(err, ErrorCodeStatusURLMissing))
			assert.Equal(t, "Status URL is missing in the response: "+tt.detail, err.Error())
		})
	}
}

func TestNewJobNilFetcher(t *testing.T) {
	_, err := NewJob(json.RawMessage(`"http://host/status"`), nil)
	assert.ErrorIs(t, err, ErrNilStatusFetcher)
}

func TestNewJob(t *testing.T) {
	job := newTestJob(t, staticFetcher(`{}`))

	assert.Equal(t, testStatusURL, job.URL())
	assert.Empty(t, job.JobID())
	assert.Empty(t, job.Outputs())
	assert.False(t, job.IsDone())
	assert.False(t, job.Succeeded())
}

func TestNewJobLegacyStringResponse(t *testing.T) {
	job, err := NewJob(json.RawMessage(`"http://host/legacy/status"`), staticFetcher(`{}`))
	require.NoError(t, err)
	assert.Equal(t, "http://host/legacy/status", job.URL())
}

func TestJobSnapshotDone(t *testing.T) {
	tests := []struct {
		name     string
		statuses []JobStatus
		want     bool
	}{
		{"no outputs", nil, false},
		{"single output no status", []JobStatus{""}, false},
		{"single output pending", []JobStatus{JobStatusPending}, false},
		{"single output succeeded", []JobStatus{JobStatusSucceeded}, true},
		{"single output failed", []JobStatus{JobStatusFailed}, true},
		{"multi output incomplete 1", []JobStatus{JobStatusFailed, JobStatusRunning}, false},
		{"multi output incomplete 2", []JobStatus{JobStatusRunning, JobStatusFailed}, false},
		{"multi output uploading", []JobStatus{JobStatusSucceeded, JobStatusUploading}, false},
		{"multi output complete 1", []JobStatus{JobStatusFailed, JobStatusSucceeded}, true},
		{"multi output complete 2", []JobStatus{JobStatusSucceeded, JobStatusFailed}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snapshot := JobSnapshot{URL: testStatusURL}
			for _, status := range tt.statuses {
				snapshot.Outputs = append(snapshot.Outputs, JobOutput{Status: status})
			}
			assert.Equal(t, tt.want, snapshot.Done())
		})
	}
}

func TestJobPollNoOutput(t *testing.T) {
	job := newTestJob(t, staticFetcher(`{}`))

	_, err := job.Poll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, testStatusURL, job.URL())
	assert.Empty(t, job.JobID())
	assert.Equal(t, []JobOutput{}, job.Outputs())
	assert.False(t, job.IsDone())
}

func TestJobPollCutoutPending(t *testing.T) {
	job := newTestJob(t, staticFetcher(`{
		"jobID": "c900e70c",
		"status": "pending",
		"_links": {"self": {"href": "https://image.adobe.io/sensei/status/c900e70c"}}
	}`))

	_, err := job.Poll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "c900e70c", job.JobID())
	assert.Equal(t, "https://image.adobe.io/sensei/status/c900e70c", job.URL())
	assert.Empty(t, job.Outputs())
	assert.False(t, job.IsDone())
}

func TestJobPollCutoutSucceeded(t *testing.T) {
	job := newTestJob(t, staticFetcher(`{
		"jobID": "c900e70c",
		"status": "succeeded",
		"input": "/files/images/input.jpg",
		"output": {
			"storage": "adobe",
			"href": "/files/cutout/output/mask.png",
			"mask": {"format": "binary"}
		},
		"_links": {"self": {"href": "https://image.adobe.io/sensei/status/c900e70c"}}
	}`))

	_, err := job.Poll(context.Background())
	require.NoError(t, err)

	require.Len(t, job.Outputs(), 1)
	out := job.Outputs()[0]
	assert.Equal(t, JobStatusSucceeded, out.Status)
	assert.Equal(t, "/files/images/input.jpg", out.Input)
	require.NotNil(t, out.Links)
	assert.Equal(t, map[string]any{
		"storage": "adobe",
		"href":    "/files/cutout/output/mask.png",
		"mask":    map[string]any{"format": "binary"},
	}, out.Links.Self)
	assert.Nil(t, out.Errors)
	assert.True(t, job.IsDone())
	assert.True(t, job.Succeeded())
	assert.Empty(t, job.Failures())
}

func TestJobPollCutoutFailed(t *testing.T) {
	job := newTestJob(t, staticFetcher(`{
		"jobID": "c900e70c",
		"status": "failed",
		"input": "/files/images/input.jpg",
		"errors": {"type": "InputValidationError", "code": "400", "title": "bad input"},
		"_links": {"self": {"href": "https://image.adobe.io/sensei/status/c900e70c"}}
	}`))

	_, err := job.Poll(context.Background())
	require.NoError(t, err)

	require.Len(t, job.Outputs(), 1)
	out := job.Outputs()[0]
	assert.Equal(t, JobStatusFailed, out.Status)
	assert.Nil(t, out.Links)
	assert.Equal(t, map[string]any{"type": "InputValidationError", "code": "400", "title": "bad input"}, out.Errors)
	assert.True(t, job.IsDone())
	assert.False(t, job.Succeeded())
	assert.Len(t, job.Failures(), 1)
}

func TestJobPollMultiOutputBackfillsTimestamps(t *testing.T) {
	job := newTestJob(t, staticFetcher(`{
		"jobId": "f54e0fcb",
		"created": "2018-01-04T12:57:15.12345:Z",
		"modified": "2018-01-04T12:58:36.12345:Z",
		"outputs": [
			{"input": "/some_project/photo.jpg", "status": "pending"},
			{"input": "/some_project/photo.jpg", "status": "succeeded", "created": "older"}
		],
		"_links": {"self": {"href": "https://image.adobe.io/lrService/status/f54e0fcb"}}
	}`))

	_, err := job.Poll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "f54e0fcb", job.JobID())
	assert.Equal(t, "https://image.adobe.io/lrService/status/f54e0fcb", job.URL())
	require.Len(t, job.Outputs(), 2)
	for _, out := range job.Outputs() {
		assert.Equal(t, "2018-01-04T12:57:15.12345:Z", out.Created)
		assert.Equal(t, "2018-01-04T12:58:36.12345:Z", out.Modified)
	}
	assert.False(t, job.IsDone())
}

func TestJobPollOutputsTakePrecedence(t *testing.T) {
	job := newTestJob(t, staticFetcher(`{
		"status": "failed",
		"errors": {"title": "ignored"},
		"outputs": [{"status": "succeeded"}]
	}`))

	_, err := job.Poll(context.Background())
	require.NoError(t, err)

	require.Len(t, job.Outputs(), 1)
	assert.Equal(t, JobStatusSucceeded, job.Outputs()[0].Status)
	assert.Equal(t, testStatusURL, job.URL())
}

func TestJobPollFetchError(t *testing.T) {
	boom := errors.New("boom")
	job := newTestJob(t, func(context.Context, string) (json.RawMessage, error) {
		return nil, boom
	})

	_, err := job.Poll(context.Background())
	assert.Same(t, boom, err)
	assert.Equal(t, testStatusURL, job.URL())
	assert.Empty(t, job.Outputs())
}

func TestJobPollMalformedResponse(t *testing.T) {
	job := newTestJob(t, staticFetcher(`{"outputs": "nope"}`))

	_, err := job.Poll(context.Background())
	assert.Error(t, err)
	assert.Empty(t, job.Outputs())
}

func TestJobPollFollowsStatusURL(t *testing.T) {
	var urls []string
	job := newTestJob(t, func(_ context.Context, url string) (json.RawMessage, error) {
		urls = append(urls, url)
		return json.RawMessage(`{"outputs":[{"status":"running"}],"_links":{"self":{"href":"http://host/status/2"}}}`), nil
	})

	ctx := context.Background()
	_, err := job.Poll(ctx)
	require.NoError(t, err)
	_, err = job.Poll(ctx)
	require.NoError(t, err)

	assert.Equal(t, []string{testStatusURL, "http://host/status/2"}, urls)
}

func TestJobPollUntilDone(t *testing.T) {
	var polls atomic.Int32
	job := newTestJob(t, func(context.Context, string) (json.RawMessage, error) {
		if polls.Add(1) < 2 {
			return json.RawMessage(`{"outputs":[{"status":"running"}]}`), nil
		}
		return json.RawMessage(`{"jobId":"abc","outputs":[{"status":"succeeded"}]}`), nil
	})

	got, err := job.PollUntilDone(context.Background(), time.Millisecond)
	require.NoError(t, err)
	assert.Same(t, job, got)
	assert.Equal(t, int32(2), polls.Load())
	assert.True(t, job.IsDone())
	assert.Equal(t, "abc", job.JobID())
}

func TestJobPollUntilDoneStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	var polls atomic.Int32
	job := newTestJob(t, func(context.Context, string) (json.RawMessage, error) {
		polls.Add(1)
		return nil, boom
	})

	_, err := job.PollUntilDone(context.Background(), time.Millisecond)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, int32(1), polls.Load())
}

func TestJobPollUntilDoneCancelled(t *testing.T) {
	job := newTestJob(t, staticFetcher(`{"outputs":[{"status":"running"}]}`))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := job.PollUntilDone(ctx, time.Millisecond)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, job.IsDone())
}

func TestJobMarshalJSON(t *testing.T) {
	job := newTestJob(t, staticFetcher(`{"jobId":"abc","outputs":[{"status":"succeeded","input":"in.png"}]}`))
	_, err := job.Poll(context.Background())
	require.NoError(t, err)

	content, err := json.Marshal(job)
	require.NoError(t, err)
	assert.JSONEq(t, `{"url":"`+testStatusURL+`","jobId":"abc","outputs":[{"input":"in.png","status":"succeeded"}]}`, string(content))
}

func TestJobSnapshotIsCopy(t *testing.T) {
	job := newTestJob(t, staticFetcher(`{"outputs":[{"status":"succeeded"}]}`))
	_, err := job.Poll(context.Background())
	require.NoError(t, err)

	snapshot := job.Snapshot()
	snapshot.Outputs[0].Status = JobStatusFailed
	assert.Equal(t, JobStatusSucceeded, job.Outputs()[0].Status)
}
