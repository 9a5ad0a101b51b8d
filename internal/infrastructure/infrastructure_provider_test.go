package infrastructure

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/janhq/product-search-api/internal/config"
	"github.com/janhq/product-search-api/internal/infrastructure/telemetry"
)

func TestRetryAndBreakerConfigFromEnvConfig(t *testing.T) {
	cfg := &config.Config{
		RetryMaxAttempts:   3,
		RetryInitialDelay:  100 * time.Millisecond,
		RetryMaxDelay:      time.Second,
		RetryBackoffFactor: 2,
		CBEnabled:          false,
		CBFailureThreshold: 4,
		CBSuccessThreshold: 2,
		CBTimeout:          10 * time.Second,
	}

	retry := retryConfig(cfg)
	assert.Equal(t, 3, retry.MaxAttempts)
	assert.Equal(t, 100*time.Millisecond, retry.InitialDelay)
	assert.Equal(t, time.Second, retry.MaxDelay)
	assert.Equal(t, 2.0, retry.BackoffFactor)
	assert.NotEmpty(t, retry.RetryableErrors)

	cb := circuitBreakerConfig(cfg)
	assert.False(t, cb.Enabled)
	assert.Equal(t, 4, cb.FailureThreshold)
	assert.Equal(t, 2, cb.SuccessThreshold)
	assert.Equal(t, 10*time.Second, cb.Timeout)
}

func TestProvideSanitizer(t *testing.T) {
	sanitizer := ProvideSanitizer(&config.Config{LogPIILevel: "none"})
	assert.Equal(t, telemetry.PIILevelNone, sanitizer.Level())
}
