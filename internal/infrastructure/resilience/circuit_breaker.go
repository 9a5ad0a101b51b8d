package resilience

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"

	"github.com/janhq/product-search-api/internal/infrastructure/metrics"
)

// ErrCircuitOpen is returned when the breaker rejects a call
var ErrCircuitOpen = errors.New("circuit breaker is open")

// CircuitBreakerConfig defines circuit breaker behavior
type CircuitBreakerConfig struct {
	Enabled          bool
	FailureThreshold int           // Consecutive failures before opening
	SuccessThreshold int           // Successful half-open calls needed to close
	Timeout          time.Duration // How long to stay open before trying half-open
}

// DefaultCircuitBreakerConfig returns sensible defaults
func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 15,
		SuccessThreshold: 5,
		Timeout:          45 * time.Second,
	}
}

// CircuitBreaker guards one upstream provider
type CircuitBreaker struct {
	name    string
	enabled bool
	breaker *gobreaker.CircuitBreaker
}

// NewCircuitBreaker creates a breaker; only transient failures count against it.
func NewCircuitBreaker(name string, cfg CircuitBreakerConfig) *CircuitBreaker {
	failureThreshold := cfg.FailureThreshold
	if failureThreshold <= 0 {
		failureThreshold = 1
	}
	successThreshold := cfg.SuccessThreshold
	if successThreshold <= 0 {
		successThreshold = 1
	}

	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: uint32(successThreshold),
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(failureThreshold)
		},
		IsSuccessful: func(err error) bool {
			return err == nil || !IsRetryable(err, DefaultRetryConfig().RetryableErrors)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().
				Str("provider", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state changed")
			metrics.SetCircuitBreakerState(name, to.String())
		},
	}

	metrics.SetCircuitBreakerState(name, gobreaker.StateClosed.String())

	return &CircuitBreaker{
		name:    name,
		enabled: cfg.Enabled,
		breaker: gobreaker.NewCircuitBreaker(settings),
	}
}

// Execute runs fn with circuit breaker protection
func Execute[T any](cb *CircuitBreaker, fn func() (T, error)) (T, error) {
	if cb == nil || !cb.enabled {
		return fn()
	}

	var zero T
	out, err := cb.breaker.Execute(func() (interface{}, error) {
		return fn()
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return zero, fmt.Errorf("%w for %s", ErrCircuitOpen, cb.name)
	}
	if out == nil {
		return zero, err
	}
	return out.(T), err
}

// State returns the breaker state as "closed", "half-open" or "open"
func (cb *CircuitBreaker) State() string {
	if cb == nil || !cb.enabled {
		return gobreaker.StateClosed.String()
	}
	return cb.breaker.State().String()
}
