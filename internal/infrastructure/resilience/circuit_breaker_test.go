package resilience

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCircuitBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	cb := NewCircuitBreaker("test_open", CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 2,
		SuccessThreshold: 1,
		Timeout:          time.Minute,
	})

	failing := func() (string, error) {
		return "", &StatusError{Provider: "search", StatusCode: http.StatusServiceUnavailable}
	}

	_, _ = Execute(cb, failing)
	_, _ = Execute(cb, failing)
	assert.Equal(t, "open", cb.State())

	called := false
	_, err := Execute(cb, func() (string, error) {
		called = true
		return "ok", nil
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCircuitOpen))
	assert.False(t, called)
}

func TestCircuitBreaker_ClientErrorsDoNotTrip(t *testing.T) {
	cb := NewCircuitBreaker("test_client_errors", CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 1,
		SuccessThreshold: 1,
		Timeout:          time.Minute,
	})

	_, err := Execute(cb, func() (string, error) {
		return "", &StatusError{Provider: "search", StatusCode: http.StatusNotFound}
	})
	require.Error(t, err)
	assert.Equal(t, "closed", cb.State())
}

func TestCircuitBreaker_Disabled(t *testing.T) {
	cb := NewCircuitBreaker("test_disabled", CircuitBreakerConfig{Enabled: false, FailureThreshold: 1})

	for i := 0; i < 3; i++ {
		_, _ = Execute(cb, func() (int, error) {
			return 0, &StatusError{StatusCode: http.StatusBadGateway}
		})
	}

	out, err := Execute(cb, func() (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, out)
	assert.Equal(t, "closed", cb.State())
}

func TestCircuitBreaker_ReturnsTypedResult(t *testing.T) {
	cb := NewCircuitBreaker("test_typed", DefaultCircuitBreakerConfig())

	type payload struct{ Value string }
	out, err := Execute(cb, func() (*payload, error) {
		return &payload{Value: "chair"}, nil
	})
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, "chair", out.Value)
}
