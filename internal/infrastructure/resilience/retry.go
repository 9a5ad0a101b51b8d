package resilience

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"

	"github.com/janhq/product-search-api/internal/infrastructure/metrics"
)

// RetryConfig defines retry behavior for upstream calls
type RetryConfig struct {
	MaxAttempts     int
	InitialDelay    time.Duration
	MaxDelay        time.Duration
	BackoffFactor   float64
	RetryableErrors []string
}

// DefaultRetryConfig allows one retry after a short backoff
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:   2,
		InitialDelay:  250 * time.Millisecond,
		MaxDelay:      2 * time.Second,
		BackoffFactor: 1.5,
		RetryableErrors: []string{
			"timeout",
			"connection refused",
			"connection reset",
			"temporary failure",
			"unexpected eof",
		},
	}
}

// StatusError is returned by upstream clients for non-success HTTP responses
type StatusError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s returned status %d", e.Provider, e.StatusCode)
	}
	return fmt.Sprintf("%s returned status %d: %s", e.Provider, e.StatusCode, e.Body)
}

// IsRetryableStatus reports whether an HTTP status is worth retrying
func IsRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

// RetryableFunc is a function that can be retried; attempt starts at 1
type RetryableFunc[T any] func(ctx context.Context, attempt int) (T, error)

// WithRetry executes fn with exponential backoff. Only transient errors are retried.
func WithRetry[T any](ctx context.Context, cfg RetryConfig, operation string, fn RetryableFunc[T]) (T, error) {
	maxAttempts := cfg.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 1
	}

	expBackoff := backoff.NewExponentialBackOff()
	if cfg.InitialDelay > 0 {
		expBackoff.InitialInterval = cfg.InitialDelay
	}
	if cfg.MaxDelay > 0 {
		expBackoff.MaxInterval = cfg.MaxDelay
	}
	if cfg.BackoffFactor >= 1 {
		expBackoff.Multiplier = cfg.BackoffFactor
	}
	// 10% jitter to avoid synchronized retries
	expBackoff.RandomizationFactor = 0.1
	expBackoff.MaxElapsedTime = 0

	policy := backoff.WithContext(backoff.WithMaxRetries(expBackoff, uint64(maxAttempts-1)), ctx)

	attempt := 0
	op := func() (T, error) {
		attempt++
		result, err := fn(ctx, attempt)
		if err == nil {
			if attempt > 1 {
				log.Info().
					Str("operation", operation).
					Int("attempt", attempt).
					Msg("operation succeeded after retry")
			}
			return result, nil
		}
		if ctx.Err() != nil || !IsRetryable(err, cfg.RetryableErrors) {
			log.Debug().
				Err(err).
				Str("operation", operation).
				Int("attempt", attempt).
				Msg("non-retryable error, aborting")
			return result, backoff.Permanent(err)
		}
		return result, err
	}

	notify := func(err error, delay time.Duration) {
		metrics.RecordRetry(operation)
		log.Warn().
			Err(err).
			Str("operation", operation).
			Int("attempt", attempt).
			Int("max_attempts", maxAttempts).
			Dur("retry_delay", delay).
			Msg("retrying operation after error")
	}

	return backoff.RetryNotifyWithData(op, policy, notify)
}

// IsRetryable checks if an error should trigger a retry
func IsRetryable(err error, patterns []string) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, ErrCircuitOpen) {
		return false
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return IsRetryableStatus(statusErr.StatusCode)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	errStr := strings.ToLower(err.Error())
	for _, pattern := range patterns {
		if strings.Contains(errStr, strings.ToLower(pattern)) {
			return true
		}
	}
	return false
}

// IsTimeout reports whether err came from a deadline or a client timeout
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
