package resilience

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRetryConfig(maxAttempts int) RetryConfig {
	cfg := DefaultRetryConfig()
	cfg.MaxAttempts = maxAttempts
	cfg.InitialDelay = time.Millisecond
	cfg.MaxDelay = 5 * time.Millisecond
	return cfg
}

func TestWithRetry_SucceedsAfterTransientFailure(t *testing.T) {
	calls := 0
	result, err := WithRetry(context.Background(), fastRetryConfig(2), "test", func(ctx context.Context, attempt int) (string, error) {
		calls++
		if attempt == 1 {
			return "", &StatusError{Provider: "search", StatusCode: http.StatusServiceUnavailable}
		}
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 2, calls)
}

func TestWithRetry_DoesNotRetryClientErrors(t *testing.T) {
	calls := 0
	_, err := WithRetry(context.Background(), fastRetryConfig(3), "test", func(ctx context.Context, attempt int) (string, error) {
		calls++
		return "", &StatusError{Provider: "search", StatusCode: http.StatusNotFound}
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
}

func TestWithRetry_StopsAtMaxAttempts(t *testing.T) {
	calls := 0
	_, err := WithRetry(context.Background(), fastRetryConfig(3), "test", func(ctx context.Context, attempt int) (int, error) {
		calls++
		return 0, &StatusError{Provider: "generation", StatusCode: http.StatusBadGateway}
	})

	require.Error(t, err)
	assert.Equal(t, 3, calls)
}

func TestWithRetry_ZeroAttemptsRunsOnce(t *testing.T) {
	calls := 0
	_, err := WithRetry(context.Background(), fastRetryConfig(0), "test", func(ctx context.Context, attempt int) (int, error) {
		calls++
		return 0, &StatusError{Provider: "search", StatusCode: http.StatusInternalServerError}
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestWithRetry_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	_, err := WithRetry(ctx, fastRetryConfig(5), "test", func(ctx context.Context, attempt int) (int, error) {
		calls++
		cancel()
		return 0, errors.New("connection reset by peer")
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestIsRetryable(t *testing.T) {
	patterns := DefaultRetryConfig().RetryableErrors

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "canceled", err: context.Canceled, want: false},
		{name: "circuit open", err: ErrCircuitOpen, want: false},
		{name: "rate limited", err: &StatusError{StatusCode: http.StatusTooManyRequests}, want: true},
		{name: "server error", err: &StatusError{StatusCode: http.StatusInternalServerError}, want: true},
		{name: "not found", err: &StatusError{StatusCode: http.StatusNotFound}, want: false},
		{name: "connection refused", err: errors.New("dial tcp: connection refused"), want: true},
		{name: "deadline exceeded", err: context.DeadlineExceeded, want: true},
		{name: "decode failure", err: errors.New("invalid character 'x'"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryable(tt.err, patterns))
		})
	}
}

type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

func TestIsTimeout(t *testing.T) {
	assert.True(t, IsTimeout(context.DeadlineExceeded))
	assert.True(t, IsTimeout(fmt.Errorf("get: %w", timeoutError{})))
	assert.False(t, IsTimeout(errors.New("connection refused")))
	assert.False(t, IsTimeout(nil))
}
