package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
)

func TestShouldRetry(t *testing.T) {
	response := func(code int) *resty.Response {
		return &resty.Response{RawResponse: &http.Response{StatusCode: code}}
	}

	assert.True(t, shouldRetry(response(http.StatusTooManyRequests), nil))
	assert.True(t, shouldRetry(response(http.StatusInternalServerError), nil))
	assert.True(t, shouldRetry(response(http.StatusServiceUnavailable), nil))
	assert.False(t, shouldRetry(response(http.StatusBadRequest), nil))
	assert.False(t, shouldRetry(response(http.StatusAccepted), nil))
	assert.False(t, shouldRetry(nil, nil))

	assert.True(t, shouldRetry(nil, errors.New("connection reset by peer")))
	assert.False(t, shouldRetry(nil, fmt.Errorf("get: %w", context.Canceled)))
	assert.False(t, shouldRetry(nil, fmt.Errorf("get: %w", context.DeadlineExceeded)))
}
