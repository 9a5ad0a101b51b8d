package infrastructure

import (
	"github.com/google/wire"

	"github.com/janhq/product-search-api/internal/config"
	"github.com/janhq/product-search-api/internal/domain/productsearch"
	"github.com/janhq/product-search-api/internal/infrastructure/generation"
	searchclient "github.com/janhq/product-search-api/internal/infrastructure/productsearch"
	"github.com/janhq/product-search-api/internal/infrastructure/resilience"
	"github.com/janhq/product-search-api/internal/infrastructure/telemetry"
)

// InfrastructureProvider provides all infrastructure dependencies
var InfrastructureProvider = wire.NewSet(
	// Log sanitizer
	ProvideSanitizer,

	// Product search client
	ProvideSearchClient,
	wire.Bind(new(productsearch.SearchClient), new(*searchclient.Client)),

	// Generation client
	ProvideGenerationClient,
	wire.Bind(new(productsearch.Generator), new(*generation.Client)),
)

// ProvideSanitizer provides the PII sanitizer used for logs and spans
func ProvideSanitizer(cfg *config.Config) *telemetry.Sanitizer {
	return telemetry.NewSanitizer(telemetry.ParsePIILevel(cfg.LogPIILevel), cfg.LogPIISalt)
}

// ProvideSearchClient provides the product search client
func ProvideSearchClient(cfg *config.Config) *searchclient.Client {
	return searchclient.NewClient(searchclient.ClientConfig{
		Endpoint:       cfg.SearchEndpoint,
		APIKey:         cfg.SearchAPIKey,
		Timeout:        cfg.SearchTimeout,
		Retry:          retryConfig(cfg),
		CircuitBreaker: circuitBreakerConfig(cfg),
	})
}

// ProvideGenerationClient provides the chat completions client
func ProvideGenerationClient(cfg *config.Config) *generation.Client {
	return generation.NewClient(generation.ClientConfig{
		BaseURL:        cfg.GenerationBaseURL,
		APIKey:         cfg.GenerationAPIKey,
		Model:          cfg.GenerationModel,
		Temperature:    cfg.GenerationTemperature,
		MaxTokens:      cfg.GenerationMaxTokens,
		Timeout:        cfg.GenerationTimeout,
		Retry:          retryConfig(cfg),
		CircuitBreaker: circuitBreakerConfig(cfg),
	})
}

func retryConfig(cfg *config.Config) resilience.RetryConfig {
	retry := resilience.DefaultRetryConfig()
	if cfg.RetryMaxAttempts > 0 {
		retry.MaxAttempts = cfg.RetryMaxAttempts
	}
	if cfg.RetryInitialDelay > 0 {
		retry.InitialDelay = cfg.RetryInitialDelay
	}
	if cfg.RetryMaxDelay > 0 {
		retry.MaxDelay = cfg.RetryMaxDelay
	}
	if cfg.RetryBackoffFactor > 0 {
		retry.BackoffFactor = cfg.RetryBackoffFactor
	}
	return retry
}

func circuitBreakerConfig(cfg *config.Config) resilience.CircuitBreakerConfig {
	cb := resilience.DefaultCircuitBreakerConfig()
	cb.Enabled = cfg.CBEnabled
	if cfg.CBFailureThreshold > 0 {
		cb.FailureThreshold = cfg.CBFailureThreshold
	}
	if cfg.CBSuccessThreshold > 0 {
		cb.SuccessThreshold = cfg.CBSuccessThreshold
	}
	if cfg.CBTimeout > 0 {
		cb.Timeout = cfg.CBTimeout
	}
	return cb
}
