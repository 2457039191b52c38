package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// shouldRetry retries transport errors, throttled requests and server errors.
// Cancelled or expired requests are never retried.
func shouldRetry(resp *resty.Response, err error) bool {
	if err != nil {
		return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
	}
	if resp == nil {
		return false
	}
	return resp.StatusCode() == http.StatusTooManyRequests || resp.StatusCode() >= http.StatusInternalServerError
}

// initiate starts a job and returns the raw initiate response.
func (c *client) initiate(ctx context.Context, operation Operation, endpoint string, body any) (json.RawMessage, error) {
	requestID := uuid.NewString()

	c.logger.Debug("request",
		zap.String("operation", string(operation)),
		zap.String("endpoint", endpoint),
		zap.String("request-id", requestID),
		zap.Any("body", body),
	)

	resp, err := c.restyClient.R().
		SetContext(ctx).
		SetHeader(RequestIDHeader, requestID).
		SetBody(body).
		Post(endpoint)

	if err != nil {
		return nil, fmt.Errorf("%s failed: %w", operation, err)
	}

	if !resp.IsSuccess() {
		return nil, errStatus(operation, resp.StatusCode(), resp.Status(), resp.Body(), requestID)
	}

	return json.RawMessage(resp.Body()), nil
}

// GetJobStatus fetches the raw status response behind a status URL.
func (c *client) GetJobStatus(ctx context.Context, url string) (json.RawMessage, error) {
	if url == "" {
		return nil, ErrStatusURLMissing
	}

	requestID := uuid.NewString()
	resp, err := c.restyClient.R().
		SetContext(ctx).
		SetHeader(RequestIDHeader, requestID).
		Get(url)

	if err != nil {
		return nil, fmt.Errorf("%s from %s failed: %w", OperationGetJobStatus, url, err)
	}

	if !resp.IsSuccess() {
		return nil, errStatus(OperationGetJobStatus, resp.StatusCode(), resp.Status(), resp.Body(), requestID)
	}

	return json.RawMessage(resp.Body()), nil
}

// TrackJob wraps an initiate response in a Job bound to this client.
func (c *client) TrackJob(initiate json.RawMessage) (*Job, error) {
	return c.newJob("", initiate)
}

func (c *client) newJob(operation Operation, initiate json.RawMessage) (*Job, error) {
	return NewJob(initiate, c.GetJobStatus,
		WithJobOperation(operation),
		WithJobLogger(c.logger),
		WithJobMetrics(c.metrics),
	)
}

// run starts a job and waits for all of its outputs to finish.
func (c *client) run(ctx context.Context, operation Operation, endpoint string, body any) (*Job, error) {
	initiate, err := c.initiate(ctx, operation, endpoint, body)
	if err != nil {
		return nil, err
	}

	job, err := c.newJob(operation, initiate)
	if err != nil {
		return nil, err
	}

	ctx, cancel := withProcessingTimeout(ctx, c.processingTimeout)
	defer cancel()

	return job.PollUntilDone(ctx, c.pollInterval)
}

func (c *client) logResponse(_ *resty.Client, resp *resty.Response) error {
	if ce := c.logger.Check(zap.DebugLevel, "response"); ce != nil {
		body := resp.Body()
		if len(body) > maxLoggedPayloadBytes {
			body = body[:maxLoggedPayloadBytes]
		}
		ce.Write(
			zap.String("method", resp.Request.Method),
			zap.String("url", resp.Request.URL),
			zap.Int("status", resp.StatusCode()),
			zap.String("request-id", resp.Request.Header.Get(RequestIDHeader)),
			zap.ByteString("body", body),
		)
	}
	return nil
}
